// Named-marker bridge for squirrel-built queries.
package database

import (
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// namedFormat rewrites squirrel's ? placeholders as :p1, :p2, ... so
// builder output feeds the named binding contract. A doubled ?? is the
// squirrel escape for a literal question mark.
type namedFormat struct{}

func (namedFormat) ReplacePlaceholders(query string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(query))

	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			if i+1 < len(query) && query[i+1] == '?' {
				sb.WriteByte('?')
				i++
				continue
			}
			n++
			sb.WriteString(":p")
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteByte(query[i])
	}

	return sb.String(), nil
}

// Marker returns the named marker the builder emits for the nth
// argument (1-based).
func Marker(n int) string {
	return ":p" + strconv.Itoa(n)
}

// Builder returns a squirrel statement builder whose output uses named
// markers compatible with Binding. Callers still attach explicit typed
// bindings for every builder argument.
func Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(namedFormat{})
}
