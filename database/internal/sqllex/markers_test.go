package sqllex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteSimpleMarkers(t *testing.T) {
	sql, markers := Rewrite("SELECT * FROM users WHERE id = :id AND active = :active")
	assert.Equal(t, "SELECT * FROM users WHERE id = $1 AND active = $2", sql)
	assert.Equal(t, []string{":id", ":active"}, markers)
}

func TestRewriteRepeatedMarkerSharesOrdinal(t *testing.T) {
	sql, markers := Rewrite("SELECT :v AS a, :v AS b, :w AS c")
	assert.Equal(t, "SELECT $1 AS a, $1 AS b, $2 AS c", sql)
	assert.Equal(t, []string{":v", ":w"}, markers)
}

func TestRewriteSkipsStringLiterals(t *testing.T) {
	sql, markers := Rewrite(`SELECT ':nope' FROM t WHERE name = :name`)
	assert.Equal(t, `SELECT ':nope' FROM t WHERE name = $1`, sql)
	assert.Equal(t, []string{":name"}, markers)
}

func TestRewriteHonorsDoubledQuoteEscape(t *testing.T) {
	sql, markers := Rewrite(`SELECT 'it''s :not a marker' WHERE x = :x`)
	assert.Equal(t, `SELECT 'it''s :not a marker' WHERE x = $1`, sql)
	assert.Equal(t, []string{":x"}, markers)
}

func TestRewriteSkipsQuotedIdentifiers(t *testing.T) {
	sql, markers := Rewrite(`SELECT ":col" FROM t WHERE id = :id`)
	assert.Equal(t, `SELECT ":col" FROM t WHERE id = $1`, sql)
	assert.Equal(t, []string{":id"}, markers)
}

func TestRewriteSkipsCasts(t *testing.T) {
	sql, markers := Rewrite("SELECT :v::text, amount::numeric FROM t")
	assert.Equal(t, "SELECT $1::text, amount::numeric FROM t", sql)
	assert.Equal(t, []string{":v"}, markers)
}

func TestRewriteSkipsComments(t *testing.T) {
	sql, markers := Rewrite("SELECT :a -- :b is not one\nFROM t /* :c neither */ WHERE x = :d")
	assert.Equal(t, "SELECT $1 -- :b is not one\nFROM t /* :c neither */ WHERE x = $2", sql)
	assert.Equal(t, []string{":a", ":d"}, markers)
}

func TestRewriteNoMarkers(t *testing.T) {
	sql, markers := Rewrite("SELECT 1")
	assert.Equal(t, "SELECT 1", sql)
	assert.Empty(t, markers)
}

func TestRewriteBareColon(t *testing.T) {
	sql, markers := Rewrite("SELECT ': ' || :v")
	assert.Equal(t, "SELECT ': ' || $1", sql)
	assert.Equal(t, []string{":v"}, markers)
}
