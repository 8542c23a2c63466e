// Package request provides helpers for extracting and sanitizing HTTP
// parameters from echo requests. Values are trimmed before use and
// unparsable numerics fall back to a caller-supplied default with a
// warning diagnostic, never a panic.
package request

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gaborage/go-appkit/logger"
)

// Params extracts typed parameters from one request context.
type Params struct {
	c   echo.Context
	log logger.Logger
}

// From wraps an echo context for parameter extraction.
func From(c echo.Context, log logger.Logger) Params {
	return Params{c: c, log: log}
}

// Path returns the named path parameter, trimmed, or fallback when the
// parameter is absent or blank.
func (p Params) Path(name, fallback string) string {
	return orDefault(p.c.Param(name), fallback)
}

// Query returns the named query parameter, trimmed, or fallback.
func (p Params) Query(name, fallback string) string {
	return orDefault(p.c.QueryParam(name), fallback)
}

// Form returns the named form parameter, trimmed, or fallback.
func (p Params) Form(name, fallback string) string {
	return orDefault(p.c.FormValue(name), fallback)
}

// Lookup searches path, then query, then form parameters for name and
// reports whether a non-blank value was found.
func (p Params) Lookup(name string) (string, bool) {
	for _, v := range []string{p.c.Param(name), p.c.QueryParam(name), p.c.FormValue(name)} {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}

// Int returns the named parameter (path/query/form precedence) parsed
// as an int, or fallback when absent or unparsable.
func (p Params) Int(name string, fallback int) int {
	raw, ok := p.Lookup(name)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		p.log.Warn().Str("param", name).Str("value", raw).Msg("Parameter is not an integer")
		return fallback
	}
	return n
}

// Int64 returns the named parameter parsed as an int64, or fallback.
func (p Params) Int64(name string, fallback int64) int64 {
	raw, ok := p.Lookup(name)
	if !ok {
		return fallback
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		p.log.Warn().Str("param", name).Str("value", raw).Msg("Parameter is not an integer")
		return fallback
	}
	return n
}

// Bool returns the named parameter parsed as a boolean, or fallback.
// Accepted spellings are those of strconv.ParseBool.
func (p Params) Bool(name string, fallback bool) bool {
	raw, ok := p.Lookup(name)
	if !ok {
		return fallback
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.log.Warn().Str("param", name).Str("value", raw).Msg("Parameter is not a boolean")
		return fallback
	}
	return b
}

func orDefault(v, fallback string) string {
	if trimmed := strings.TrimSpace(v); trimmed != "" {
		return trimmed
	}
	return fallback
}
