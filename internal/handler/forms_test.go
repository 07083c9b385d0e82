package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormStoreLifecycle(t *testing.T) {
	s := NewFormStore()
	assert.Nil(t, s.Get(1))

	f := s.Start(1, FormCard)
	require.Same(t, f, s.Get(1))
	assert.Equal(t, FormCard, f.Kind)

	// Starting a new form replaces the old one.
	s.Start(1, FormLogin)
	assert.Equal(t, FormLogin, s.Get(1).Kind)

	s.Clear(1)
	assert.Nil(t, s.Get(1))
}

func TestFormStoreBlocksDoubleSubmit(t *testing.T) {
	s := NewFormStore()
	s.Start(1, FormCard)

	require.True(t, s.BeginSubmit(1))
	assert.False(t, s.BeginSubmit(1), "second tap while in flight must be rejected")

	s.EndSubmit(1)
	assert.True(t, s.BeginSubmit(1))
}

func TestFormStoreBeginSubmitWithoutForm(t *testing.T) {
	s := NewFormStore()
	assert.False(t, s.BeginSubmit(99))
}
