// Package sqllex provides minimal lexical scanning of SQL text for
// named parameter markers.
package sqllex

import (
	"strconv"
	"strings"
)

// Rewrite scans query for :name markers and replaces each with a
// numbered $N placeholder. Repeated markers share one ordinal. Markers
// inside single-quoted strings, double-quoted identifiers, line and
// block comments, and the type part of ::casts are left untouched.
//
// It returns the rewritten SQL and the markers (including the leading
// colon) in ordinal order.
func Rewrite(query string) (string, []string) {
	var sb strings.Builder
	sb.Grow(len(query))

	var order []string
	ordinals := make(map[string]int)

	i := 0
	for i < len(query) {
		c := query[i]
		switch {
		case c == '\'':
			i = copyQuoted(&sb, query, i, '\'')
		case c == '"':
			i = copyQuoted(&sb, query, i, '"')
		case c == '-' && i+1 < len(query) && query[i+1] == '-':
			i = copyLineComment(&sb, query, i)
		case c == '/' && i+1 < len(query) && query[i+1] == '*':
			i = copyBlockComment(&sb, query, i)
		case c == ':':
			if i+1 < len(query) && query[i+1] == ':' {
				// cast operator, the type name that follows is not a marker
				sb.WriteString("::")
				i += 2
				continue
			}
			if i+1 < len(query) && isIdentStart(query[i+1]) {
				j := i + 1
				for j < len(query) && isIdentPart(query[j]) {
					j++
				}
				marker := query[i:j]
				n, seen := ordinals[marker]
				if !seen {
					n = len(order) + 1
					ordinals[marker] = n
					order = append(order, marker)
				}
				sb.WriteByte('$')
				sb.WriteString(strconv.Itoa(n))
				i = j
				continue
			}
			sb.WriteByte(c)
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}

	return sb.String(), order
}

// copyQuoted copies a quoted region starting at i, honoring doubled
// quote escapes. Returns the index after the closing quote.
func copyQuoted(sb *strings.Builder, query string, i int, quote byte) int {
	sb.WriteByte(query[i])
	i++
	for i < len(query) {
		sb.WriteByte(query[i])
		if query[i] == quote {
			if i+1 < len(query) && query[i+1] == quote {
				sb.WriteByte(query[i+1])
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return i
}

func copyLineComment(sb *strings.Builder, query string, i int) int {
	for i < len(query) && query[i] != '\n' {
		sb.WriteByte(query[i])
		i++
	}
	return i
}

func copyBlockComment(sb *strings.Builder, query string, i int) int {
	sb.WriteString("/*")
	i += 2
	for i < len(query) {
		if query[i] == '*' && i+1 < len(query) && query[i+1] == '/' {
			sb.WriteString("*/")
			return i + 2
		}
		sb.WriteByte(query[i])
		i++
	}
	return i
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}
