package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled(t *testing.T) {
	gates := New(map[string]bool{
		"render": false,
		"diff":   true,
	})

	assert.False(t, gates.Enabled("render"))
	assert.True(t, gates.Enabled("diff"))
	// Unknown features default to enabled
	assert.True(t, gates.Enabled("validate"))
}

func TestEnabled_EmptyGates(t *testing.T) {
	gates := New(nil)
	assert.True(t, gates.Enabled("render"))
}
