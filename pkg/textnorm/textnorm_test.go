package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Cobranza-api/pkg/textnorm"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "merida", textnorm.Fold("Mérida"))
	assert.Equal(t, "cafe clasico", textnorm.Fold("CAFÉ Clásico"))
}

func TestContains(t *testing.T) {
	assert.True(t, textnorm.Contains("Playa del Carmen", "CARMEN"))
	assert.True(t, textnorm.Contains("Cancún Centro", "cancun"))
	assert.False(t, textnorm.Contains("Tulum", "cozumel"))
}

func TestMatch(t *testing.T) {
	got, ok := textnorm.Match("  cancun ", []string{"Cancún", "Tulum"})
	assert.True(t, ok)
	assert.Equal(t, "Cancún", got)

	_, ok = textnorm.Match("Bacalar", []string{"Cancún", "Tulum"})
	assert.False(t, ok)
}
