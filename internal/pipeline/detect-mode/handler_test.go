package detectmode

import (
	"testing"

	"fairbot/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.Mode
	}{
		{"empty text", "", models.ModeBrief},
		{"whitespace only", "   \t ", models.ModeBrief},
		{"detailed hint", "Donne-moi tous les détails du programme complet", models.ModeDetailed},
		{"detailed hint beats short length", "Détaille tout", models.ModeDetailed},
		{"brief hint", "Résumé du programme s'il te plaît", models.ModeBrief},
		{"brief hint beats long sentence", "Brièvement, peux-tu me dire ce qui se passe pendant toute cette semaine à la foire du livre", models.ModeBrief},
		{"short question no hint", "Horaires demain matin", models.ModeBrief},
		{"three word question", "Programme du vendredi", models.ModeBrief},
		{
			"long non-hint sentence",
			"Je voudrais savoir ce que la foire propose aux visiteurs qui viennent en famille avec des enfants pendant le week-end",
			models.ModeDetailed,
		},
		{"mid-length interrogative", "Quand est-ce que la grande foire ouvre exactement cette annee", models.ModeBrief},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.input))
		})
	}
}

func TestDetect_HintMatchesInflectedForm(t *testing.T) {
	// Substring matching: "détails" contains the hint "detail".
	assert.Equal(t, models.ModeDetailed, Detect("Avec détails supplémentaires"))
}
