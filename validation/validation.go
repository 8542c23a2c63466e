// Package validation provides input validation and sanitization helpers
// used to gate user-supplied and configuration values before they reach
// the database layer. String checks trim their input in place so callers
// always continue with the sanitized value.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// shared instance for tag-based single-value checks (ip, email)
var validate = validator.New()

// Str trims *s in place, then reports whether the trimmed value is
// non-empty, within [min, max] bytes (max <= 0 means unbounded), and
// matches pattern when one is given.
func Str(s *string, minLen, maxLen int, pattern *regexp.Regexp) bool {
	if s == nil {
		return false
	}

	*s = strings.TrimSpace(*s)

	if *s == "" || len(*s) < minLen {
		return false
	}
	if maxLen > 0 && len(*s) > maxLen {
		return false
	}
	if pattern != nil && !pattern.MatchString(*s) {
		return false
	}
	return true
}

// Fields trims every value in place and reports whether all of them are
// non-empty afterwards. A nil pointer fails the whole set.
func Fields(values ...*string) bool {
	ok := true
	for _, v := range values {
		if !Str(v, 1, 0, nil) {
			ok = false
		}
	}
	return ok
}

// FieldSets applies Fields to several groups of values and reports
// whether every group passed.
func FieldSets(sets ...[]*string) bool {
	ok := true
	for _, set := range sets {
		if !Fields(set...) {
			ok = false
		}
	}
	return ok
}

// InRange reports whether lo <= n <= hi.
func InRange(n, lo, hi int) bool {
	return n >= lo && n <= hi
}

// IsInt reports whether s parses as a base-10 integer.
func IsInt(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}

// IsFloat reports whether s parses as a floating point number.
func IsFloat(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// IsIP reports whether s is a valid IPv4 or IPv6 address.
func IsIP(s string) bool {
	return validate.Var(s, "ip") == nil
}

// IsEmail reports whether s is a plausible email address.
func IsEmail(s string) bool {
	return validate.Var(s, "email") == nil
}
