package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingConstructors(t *testing.T) {
	assert.Equal(t, Binding{Marker: ":n", Value: "x", Type: TypeString}, String(":n", "x"))
	assert.Equal(t, Binding{Marker: ":n", Value: int64(3), Type: TypeInteger}, Int(":n", 3))
	assert.Equal(t, Binding{Marker: ":n", Value: true, Type: TypeBoolean}, Bool(":n", true))
	assert.Equal(t, Binding{Marker: ":n", Type: TypeNull}, Null(":n"))
}

func TestBindingValidateAcceptsWellFormed(t *testing.T) {
	for _, b := range []Binding{
		String(":a", ""),
		Int(":b", -1),
		{Marker: ":c", Value: 7, Type: TypeInteger},
		{Marker: ":d", Value: int32(7), Type: TypeInteger},
		Bool(":e", false),
		Null(":f"),
	} {
		assert.NoError(t, b.Validate(), "marker %s", b.Marker)
	}
}

func TestBindingValidateRejectsBadMarkers(t *testing.T) {
	for _, b := range []Binding{
		String("", "x"),
		String(":", "x"),
		String("name", "x"),
	} {
		err := b.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedBinding)
	}
}

func TestBindingValidateRejectsKindMismatch(t *testing.T) {
	for _, b := range []Binding{
		{Marker: ":a", Value: 42, Type: TypeString},
		{Marker: ":b", Value: "42", Type: TypeInteger},
		{Marker: ":c", Value: 1, Type: TypeBoolean},
		{Marker: ":d", Value: "not nil", Type: TypeNull},
		{Marker: ":e", Value: "x", Type: TypeTag(9)},
	} {
		err := b.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedBinding)
		assert.Contains(t, err.Error(), b.Marker)
	}
}

func TestBindingArg(t *testing.T) {
	assert.Equal(t, "x", String(":a", "x").arg())
	assert.Nil(t, Null(":a").arg())
}

func TestTypeTagString(t *testing.T) {
	assert.Equal(t, "string", TypeString.String())
	assert.Equal(t, "integer", TypeInteger.String())
	assert.Equal(t, "boolean", TypeBoolean.String())
	assert.Equal(t, "null", TypeNull.String())
	assert.Equal(t, "typetag(9)", TypeTag(9).String())
}
