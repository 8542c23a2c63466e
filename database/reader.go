package database

import "fmt"

// FetchShape describes the structural form in which a result row is
// returned: field-name keyed, positional, or both combined.
type FetchShape uint8

const (
	FetchAssoc FetchShape = iota
	FetchNum
	FetchBoth
)

func (s FetchShape) valid() bool {
	return s == FetchAssoc || s == FetchNum || s == FetchBoth
}

func (s FetchShape) String() string {
	switch s {
	case FetchAssoc:
		return "assoc"
	case FetchNum:
		return "num"
	case FetchBoth:
		return "both"
	default:
		return fmt.Sprintf("fetchshape(%d)", uint8(s))
	}
}

// Row is one materialized result row. Fields is populated for
// FetchAssoc and FetchBoth, Values for FetchNum and FetchBoth.
type Row struct {
	Fields map[string]any
	Values []any
}

// readOne materializes at most one row from an open cursor. Zero
// matching rows yield ErrNoRows with a recorded count of zero.
func (cur *cursor) readOne(shape FetchShape) (Row, error) {
	if !shape.valid() {
		cur.log.Warn().Str("shape", shape.String()).Msg("Unrecognized fetch shape requested")
		cur.count = 0
		return Row{}, ErrInvalidFetchShape
	}

	cols, err := cur.rows.Columns()
	if err != nil {
		cur.count = 0
		return Row{}, fmt.Errorf("columns: %w", err)
	}

	if !cur.rows.Next() {
		cur.count = 0
		if err := cur.rows.Err(); err != nil {
			return Row{}, fmt.Errorf("fetch: %w", err)
		}
		return Row{}, ErrNoRows
	}

	vals, err := scanValues(cur)
	if err != nil {
		cur.count = 0
		return Row{}, err
	}

	cur.count = 1
	return shapeRow(cols, vals, shape), nil
}

// readAll materializes every row from an open cursor. The recorded
// count equals the number of matching rows.
func (cur *cursor) readAll(shape FetchShape) ([]Row, error) {
	if !shape.valid() {
		cur.log.Warn().Str("shape", shape.String()).Msg("Unrecognized fetch shape requested")
		cur.count = 0
		return nil, ErrInvalidFetchShape
	}

	cols, err := cur.rows.Columns()
	if err != nil {
		cur.count = 0
		return nil, fmt.Errorf("columns: %w", err)
	}

	var out []Row
	for cur.rows.Next() {
		vals, err := scanValues(cur)
		if err != nil {
			cur.count = 0
			return nil, err
		}
		out = append(out, shapeRow(cols, vals, shape))
	}

	if err := cur.rows.Err(); err != nil {
		cur.count = 0
		return nil, fmt.Errorf("fetch: %w", err)
	}

	cur.count = int64(len(out))
	return out, nil
}

// readColumn materializes the first column of the first row as a
// scalar. Zero matching rows yield ErrNoRows.
func (cur *cursor) readColumn() (any, error) {
	if !cur.rows.Next() {
		cur.count = 0
		if err := cur.rows.Err(); err != nil {
			return nil, fmt.Errorf("fetch: %w", err)
		}
		return nil, ErrNoRows
	}

	vals, err := scanValues(cur)
	if err != nil {
		cur.count = 0
		return nil, err
	}
	if len(vals) == 0 {
		cur.count = 0
		return nil, ErrNoRows
	}

	cur.count = 1
	return vals[0], nil
}

// scanValues scans the current row into generic values. Byte slices
// are normalized to strings so text columns compare naturally.
func scanValues(cur *cursor) ([]any, error) {
	cols, err := cur.rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	raw := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	if err := cur.rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	for i, v := range raw {
		if b, ok := v.([]byte); ok {
			raw[i] = string(b)
		}
	}

	return raw, nil
}

func shapeRow(cols []string, vals []any, shape FetchShape) Row {
	var row Row
	if shape == FetchAssoc || shape == FetchBoth {
		row.Fields = make(map[string]any, len(cols))
		for i, c := range cols {
			row.Fields[c] = vals[i]
		}
	}
	if shape == FetchNum || shape == FetchBoth {
		row.Values = vals
	}
	return row
}
