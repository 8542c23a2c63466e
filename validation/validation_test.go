package validation

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrTrimsInPlace(t *testing.T) {
	s := "  hello  "
	assert.True(t, Str(&s, 1, 10, nil))
	assert.Equal(t, "hello", s)
}

func TestStrRejectsNilEmptyAndBounds(t *testing.T) {
	assert.False(t, Str(nil, 1, 10, nil))

	s := "   "
	assert.False(t, Str(&s, 1, 10, nil))
	assert.Equal(t, "", s)

	s = "ab"
	assert.False(t, Str(&s, 3, 10, nil))

	s = "abcdef"
	assert.False(t, Str(&s, 1, 5, nil))

	// max <= 0 means unbounded
	s = "abcdef"
	assert.True(t, Str(&s, 1, 0, nil))
}

func TestStrPattern(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+$`)

	s := "lower"
	assert.True(t, Str(&s, 1, 10, pattern))

	s = "Mixed"
	assert.False(t, Str(&s, 1, 10, pattern))
}

func TestFields(t *testing.T) {
	a, b := " x ", "y"
	assert.True(t, Fields(&a, &b))
	assert.Equal(t, "x", a)

	empty := "  "
	assert.False(t, Fields(&a, &empty))
	assert.False(t, Fields(&a, nil))
}

func TestFieldSets(t *testing.T) {
	a, b, c := "1", "2", ""
	assert.True(t, FieldSets([]*string{&a}, []*string{&b}))
	assert.False(t, FieldSets([]*string{&a}, []*string{&c}))
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(5, 1, 10))
	assert.True(t, InRange(1, 1, 10))
	assert.True(t, InRange(10, 1, 10))
	assert.False(t, InRange(0, 1, 10))
	assert.False(t, InRange(11, 1, 10))
}

func TestIsIntAndIsFloat(t *testing.T) {
	assert.True(t, IsInt(" 42 "))
	assert.True(t, IsInt("-7"))
	assert.False(t, IsInt("4.2"))
	assert.False(t, IsInt("x"))

	assert.True(t, IsFloat("4.2"))
	assert.True(t, IsFloat("-1e3"))
	assert.True(t, IsFloat("42"))
	assert.False(t, IsFloat("four"))
}

func TestIsIP(t *testing.T) {
	assert.True(t, IsIP("192.168.0.1"))
	assert.True(t, IsIP("::1"))
	assert.False(t, IsIP("999.1.2.3"))
	assert.False(t, IsIP("example.com"))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("a@b.co"))
	assert.False(t, IsEmail("not-an-email"))
}

func TestStructValidator(t *testing.T) {
	type payload struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
		Age   int    `validate:"min=18"`
	}

	v := NewValidator()
	require.NoError(t, v.Validate(payload{Name: "a", Email: "a@b.co", Age: 30}))

	err := v.Validate(payload{Email: "nope", Age: 12})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 3)
	assert.Contains(t, err.Error(), "Name: is required")
	assert.Contains(t, err.Error(), "Email: must be a valid email address")
	assert.Contains(t, err.Error(), "Age: must be at least 18")
}
