package recommend

import (
	"context"

	"fairbot/internal/models"
)

type Input struct {
	Question string `json:"question"`

	// Category optionally restricts candidates to one catalog type
	// (programme, atelier, conference, livre, faq).
	Category string `json:"category,omitempty"`
}

type Output struct {
	// Lines are the formatted recommendations, best first. Empty when
	// nothing clears the similarity floor.
	Lines []string `json:"lines"`

	// Unavailable distinguishes an embedder outage from a legitimate
	// zero-match result, so callers can surface a diagnostic instead of
	// silently showing nothing.
	Unavailable bool `json:"unavailable,omitempty"`
}

// Embedder turns text into a dense vector. Served by an external model
// behind HTTP in production, stubbed in tests.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// catalog is the curated knowledge base the recommender scores against.
// Embeddings are filled in by Warm at startup.
var catalog = []models.RecommendationItem{
	{
		Title:       "Programme complet foire 2023",
		Category:    "programme",
		Description: "La foire 2023 commence le 28 avril avec des conférences et ateliers pour tous les âges.",
	},
	{
		Title:       "Atelier enfants - Lecture interactive",
		Category:    "atelier",
		Description: "Un atelier pour enfants où ils participent à des lectures interactives.",
	},
	{
		Title:       "Conférence auteur : Jean Dupont",
		Category:    "conference",
		Description: "Rencontrez Jean Dupont pour parler de ses derniers romans sur l'environnement.",
	},
	{
		Title:       "Livre recommandé : Le Petit Prince",
		Category:    "livre",
		Description: "Un classique pour tous les âges, traitant de l'amitié et de la découverte du monde.",
	},
	{
		Title:       "Livre recommandé : Harry Potter",
		Category:    "livre",
		Description: "Une saga fantastique très appréciée des jeunes et adultes.",
	},
	{
		Title:       "Atelier adulte - Écriture créative",
		Category:    "atelier",
		Description: "Atelier pour développer vos compétences en écriture et partager vos textes.",
	},
	{
		Title:       "Nombre d'éditeurs présents",
		Category:    "faq",
		Description: "Plus de 300 éditeurs seront présents à la foire du livre 2023.",
	},
	{
		Title:       "Événements pour enfants",
		Category:    "faq",
		Description: "Une dizaine d'événements et d'ateliers seront consacrés aux enfants durant la foire.",
	},
	{
		Title:       "Horaires des événements",
		Category:    "faq",
		Description: "Les événements ont lieu chaque jour de 10h à 19h, avec certaines nocturnes jusqu'à 22h.",
	},
	{
		Title:       "Lieu de la foire",
		Category:    "faq",
		Description: "La foire a lieu à la Maison de la Foire, Tunis.",
	},
}
