package narrate

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairbot/internal/common/logger"
	"fairbot/internal/models"
	"fairbot/internal/pipeline/recommend"
	resolvefaq "fairbot/internal/pipeline/resolve-faq"
	"fairbot/internal/store"
)

// flatEmbedder maps every text to the same vector: every catalog item
// scores 1.0 and the recommender always returns its top-k.
type flatEmbedder struct{}

func (flatEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return []float64{1, 0}, nil
}

func newTestHandler(t *testing.T) (*Handler, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	eventStore := store.NewEventStore(rdb, logger.Nop())
	faq := resolvefaq.NewHandler(rand.New(rand.NewSource(7)), logger.Nop())

	recommender := recommend.NewHandler(recommend.LoadConfig(), flatEmbedder{}, logger.Nop())
	require.NoError(t, recommender.Warm(context.Background()))

	h := NewHandler(eventStore, faq, recommender, "28 Avril 2023", rand.New(rand.NewSource(7)), logger.Nop())
	return h, rdb
}

func seedSession(t *testing.T, rdb *redis.Client, collection string, doc map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, rdb.RPush(context.Background(), collection, raw).Err())
}

func TestExecute_NarratesExplicitSessions(t *testing.T) {
	h, _ := newTestHandler(t)

	sessions := []models.Session{
		{Title: "Lecture de contes", Time: "10h00", Host: "Mme Saida", Room: "Hall B", Access: "Libre"},
		{Title: "Rencontre d'auteurs", Time: "14h00", Host: models.DefaultHost, Room: "Hall A", Access: models.DefaultAccess},
	}

	out, err := h.Execute(context.Background(), &Input{
		Source: ExplicitSource(sessions),
		Date:   "29 Avril 2023",
		Mode:   models.ModeBrief,
		Theme:  "programmes",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.SessionCount)
	assert.Equal(t, "Le programme du 29 Avril 2023 propose 2 moment(s) fort(s).", out.Answer.Summary)
	assert.Contains(t, out.Answer.Details, "Session 1 : Lecture de contes")
	assert.Contains(t, out.Answer.Details, "Session 2 : Rencontre d'auteurs")
	assert.Contains(t, out.Answer.Details, "Horaire : 10h00")
	assert.Contains(t, out.Answer.Details, "Accès : Réservée aux invités")
	assert.Contains(t, closingRemarks["programmes"], lastLine(out.Answer.Details))
}

func TestExecute_IntroBranchesOnStartQuestion(t *testing.T) {
	h, _ := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Source:   ExplicitSource([]models.Session{{Title: "Cérémonie d'ouverture", Time: "09h00"}}),
		Question: "Quand commence la foire ?",
		Mode:     models.ModeBrief,
	})
	require.NoError(t, err)

	assert.Contains(t, out.Answer.Summary, "la foire débute officiellement le 28 Avril 2023")
	assert.Contains(t, out.Answer.Summary, "1 événement(s) au programme")
}

func TestExecute_DescriptionOnlyInDetailedMode(t *testing.T) {
	h, _ := newTestHandler(t)
	sessions := []models.Session{{Title: "Atelier", Time: "10h00", Description: "Lecture interactive pour tous."}}

	brief, err := h.Execute(context.Background(), &Input{Source: ExplicitSource(sessions), Mode: models.ModeBrief})
	require.NoError(t, err)
	assert.NotContains(t, brief.Answer.Details, "Description :")

	detailed, err := h.Execute(context.Background(), &Input{Source: ExplicitSource(sessions), Mode: models.ModeDetailed})
	require.NoError(t, err)
	assert.Contains(t, detailed.Answer.Details, "Description : Lecture interactive pour tous.")
}

func TestExecute_DeferredMergesChildrenWithOriginTags(t *testing.T) {
	h, rdb := newTestHandler(t)

	seedSession(t, rdb, store.CollectionGeneral, map[string]interface{}{
		"date": "28 Avril 2023", "titre": "Conférence d'ouverture", "heure": "09h30",
	})
	seedSession(t, rdb, store.CollectionChildren, map[string]interface{}{
		"date": "28 Avril 2023", "titre": "Spectacle de marionnettes", "heure": "11h00",
	})

	out, err := h.Execute(context.Background(), &Input{
		Source:          DeferredSource(),
		Date:            "28 Avril 2023",
		Mode:            models.ModeBrief,
		IncludeChildren: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.SessionCount)
	// General records come first and each record carries its origin tag.
	general := "Session 1 : Conférence d'ouverture"
	children := "Session 2 : Spectacle de marionnettes"
	assert.Contains(t, out.Answer.Details, general)
	assert.Contains(t, out.Answer.Details, children)
	assert.Contains(t, out.Answer.Details, "Public : "+models.AudienceGeneral)
	assert.Contains(t, out.Answer.Details, "Public : "+models.AudienceChildren)
}

func TestExecute_ZeroSessionsDegradesToFallbackTiers(t *testing.T) {
	h, _ := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Source:   ExplicitSource(nil),
		Question: "Quels sont les horaires d'ouverture ?",
		Lang:     "fr",
		Mode:     models.ModeBrief,
	})
	require.NoError(t, err)

	assert.Zero(t, out.SessionCount)
	assert.Equal(t, "Aucune information disponible pour cette question.", out.Answer.Summary)
	// The FAQ tier still answers the hours question inside the details.
	assert.Contains(t, out.Answer.Details, "La foire est ouverte tous les jours de 9h à 19h.")
}

func TestExecute_ZeroSessionsLocalizedNoInfo(t *testing.T) {
	h, _ := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Source:   ExplicitSource(nil),
		Question: "zzz qqq",
		Lang:     "en",
	})
	require.NoError(t, err)

	assert.Equal(t, "No information available for this question.", out.Answer.Summary)
	assert.NotEmpty(t, out.Answer.Details)
}

func TestExecute_DocumentSourceDiscardsMalformedRecords(t *testing.T) {
	h, _ := newTestHandler(t)

	docs := []interface{}{
		map[string]interface{}{"titre": "Atelier poésie", "heure": "15h00"},
		"not a document",
		42,
	}

	out, err := h.Execute(context.Background(), &Input{
		Source: DocumentSource(docs, models.AudienceChildren),
		Mode:   models.ModeBrief,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.SessionCount)
	assert.Contains(t, out.Answer.Details, "Session 1 : Atelier poésie")
	assert.Contains(t, out.Answer.Details, "Public : Enfants")
}

// downEmbedder simulates an embedder outage on every call.
type downEmbedder struct{}

func (downEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return nil, errors.New("connection refused")
}

func TestExecute_RecommenderOutageRendersDiagnosticNote(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	eventStore := store.NewEventStore(rdb, logger.Nop())
	faq := resolvefaq.NewHandler(rand.New(rand.NewSource(7)), logger.Nop())
	recommender := recommend.NewHandler(recommend.LoadConfig(), downEmbedder{}, logger.Nop())

	h := NewHandler(eventStore, faq, recommender, "28 Avril 2023", rand.New(rand.NewSource(7)), logger.Nop())

	out, err := h.Execute(context.Background(), &Input{
		Source:   ExplicitSource(nil),
		Question: "zzz qqq",
		Lang:     "fr",
		Mode:     models.ModeBrief,
	})
	require.NoError(t, err)

	assert.Contains(t, out.Answer.Details, "Note : recommandations momentanément indisponibles.")
}

func TestClosing_UnknownThemeFallsBackToGeneral(t *testing.T) {
	h, _ := newTestHandler(t)

	for i := 0; i < 10; i++ {
		assert.Contains(t, closingRemarks["general"], h.closing("inconnu"))
	}
}

func lastLine(text string) string {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] != "" {
			return lines[i]
		}
	}
	return ""
}
