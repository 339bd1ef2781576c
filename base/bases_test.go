//go:build unit
// +build unit

package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Advanced Alchemy", "advanced-alchemy"},
		{"  spaced   out  ", "spaced-out"},
		{"Crème brûlée!", "cr-me-br-l-e"},
		{"already-sluggy", "already-sluggy"},
		{"Release v1.2.3", "release-v1-2-3"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.in))
		})
	}
}

func TestRegistryKeepsBindKeysSeparate(t *testing.T) {
	r := NewRegistry()

	type modelA struct{}
	type modelB struct{}

	r.Register(DefaultBindKey, &modelA{})
	r.Register("analytics", &modelB{})

	require.Len(t, r.Models(DefaultBindKey), 1)
	require.Len(t, r.Models("analytics"), 1)
	assert.Empty(t, r.Models("missing"))
}

func TestRegistryModelsReturnsCopy(t *testing.T) {
	r := NewRegistry()

	type model struct{}
	r.Register(DefaultBindKey, &model{})

	models := r.Models(DefaultBindKey)
	models[0] = nil

	require.NotNil(t, r.Models(DefaultBindKey)[0])
}

func TestRegisterUsesDefaultRegistry(t *testing.T) {
	type sentinelModel struct{}

	before := len(DefaultRegistry().Models(DefaultBindKey))
	Register(&sentinelModel{})

	assert.Len(t, DefaultRegistry().Models(DefaultBindKey), before+1)
}
