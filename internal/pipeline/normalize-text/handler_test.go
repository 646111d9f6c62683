package normalizetext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "BONJOUR", "bonjour"},
		{"strips accents", "Été à l'Événement", "ete a l'evenement"},
		{"removes punctuation", "Quand commence la foire ?", "quand commence la foire"},
		{"collapses whitespace", "  trop   d'espaces \t ici  ", "trop d'espaces ici"},
		{"arabic survives", "مرحبا", "مرحبا"},
		{"empty", "", ""},
		{"only punctuation", "?!.,;:", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Été", "Quand commence la foire ?", "  DÉTAILS  du   programme!  ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestNormalize_AccentInsensitive(t *testing.T) {
	assert.Equal(t, Normalize("ete"), Normalize("Été"))
}
