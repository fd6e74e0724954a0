package bidsname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityMap_ZeroValueIsReadOnly(t *testing.T) {
	var em EntityMap

	assert.False(t, em.Set("sub", "01"))
	_, ok := em.Get("sub")
	assert.False(t, ok)
	assert.Equal(t, 0, em.Len())
	assert.Nil(t, em.Keys())
	assert.Equal(t, "", em.String())
}

func TestEntityMap_SetRejectsDuplicates(t *testing.T) {
	em := NewEntityMap()
	assert.True(t, em.Set("sub", "01"))
	assert.False(t, em.Set("sub", "02"))

	v, ok := em.Get("sub")
	assert.True(t, ok)
	assert.Equal(t, "01", v)
}
