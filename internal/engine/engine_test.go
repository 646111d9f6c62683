package engine

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairbot/internal/common/logger"
	"fairbot/internal/models"
	"fairbot/internal/pipeline/narrate"
	parseintent "fairbot/internal/pipeline/parse-intent"
	"fairbot/internal/pipeline/recommend"
	resolvefaq "fairbot/internal/pipeline/resolve-faq"
	"fairbot/internal/store"
)

type stubClassifier struct {
	label      string
	confidence float64
}

func (s *stubClassifier) Classify(ctx context.Context, text string) (string, float64, error) {
	return s.label, s.confidence, nil
}

type flatEmbedder struct{}

func (flatEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return []float64{1, 0}, nil
}

func newTestEngine(t *testing.T, classifier parseintent.Classifier) (*Engine, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	eventStore := store.NewEventStore(rdb, logger.Nop())
	require.NoError(t, eventStore.SeedDefaults(context.Background()))

	intents := parseintent.NewHandler(parseintent.LoadConfig(), classifier, logger.Nop())
	faq := resolvefaq.NewHandler(rand.New(rand.NewSource(11)), logger.Nop())

	recommender := recommend.NewHandler(recommend.LoadConfig(), flatEmbedder{}, logger.Nop())
	require.NoError(t, recommender.Warm(context.Background()))

	narrator := narrate.NewHandler(eventStore, faq, recommender, "28 Avril 2023", rand.New(rand.NewSource(11)), logger.Nop())

	return New(eventStore, intents, narrator, "28 Avril 2023", "07 Mai 2023", logger.Nop()), mr
}

func TestAnswer_StartQuestionGetsStorytelling(t *testing.T) {
	e, _ := newTestEngine(t, &stubClassifier{label: "price", confidence: 0.9})

	resp := e.Answer(context.Background(), "Quand commence la foire ?", "fr", "brief")

	assert.Equal(t, models.IntentManualFoireStart, resp.Intent)
	assert.Equal(t, 1.0, resp.Confidence)
	assert.Contains(t, resp.Answer.Summary, "la foire débute officiellement le 28 Avril 2023")
	assert.NotEmpty(t, resp.Answer.Details)
}

func TestAnswer_ProgrammeByDateNarratesTheDay(t *testing.T) {
	e, _ := newTestEngine(t, &stubClassifier{label: "unknown", confidence: 0.0})

	resp := e.Answer(context.Background(), "Donne-moi le programme du 2 mai", "fr", "brief")

	assert.Equal(t, models.IntentProgrammeByDate, resp.Intent)
	assert.Contains(t, resp.Answer.Summary, "Le programme du 02 Mai 2023 propose")
	assert.Contains(t, resp.Answer.Details, "Session 1 :")
}

func TestAnswer_FixedIntentFromClassifier(t *testing.T) {
	e, _ := newTestEngine(t, &stubClassifier{label: models.IntentPrice, confidence: 0.92})

	resp := e.Answer(context.Background(), "Quel est le tarif pour un adulte ?", "fr", "detailed")

	assert.Equal(t, models.IntentPrice, resp.Intent)
	assert.Equal(t, 0.92, resp.Confidence)
	assert.Equal(t, "Les prix sont : Adulte 10 TND, Enfant 5 TND, Étudiant 7 TND.", resp.Answer.Summary)
	assert.Contains(t, resp.Answer.Details, "- Adulte : 10 TND")
}

func TestAnswer_EditorsCountriesListsCanonicalCountries(t *testing.T) {
	e, _ := newTestEngine(t, &stubClassifier{label: models.IntentEditorsCountries, confidence: 0.8})

	resp := e.Answer(context.Background(), "De quels pays viennent-ils ?", "fr", "brief")

	assert.Equal(t, models.IntentEditorsCountries, resp.Intent)
	assert.Equal(t, "Origine des éditeurs", resp.Answer.Summary)
	assert.Contains(t, resp.Answer.Details, "- Tunisie")
	assert.Contains(t, resp.Answer.Details, "- Suède")
}

func TestAnswer_LowConfidenceFallsBackToCorrectedEcho(t *testing.T) {
	e, _ := newTestEngine(t, &stubClassifier{label: models.IntentPrice, confidence: 0.05})

	resp := e.Answer(context.Background(), "Dois-je  payer pour entrer ?", "fr", "brief")

	assert.Equal(t, models.IntentUnknown, resp.Intent)
	assert.Equal(t, "Je n'ai pas compris votre question.", resp.Answer.Summary)
	assert.Contains(t, resp.Answer.Details, "Suggestion après correction : Dois-je payer pour entrer ?")
}

func TestAnswer_DatastoreOutageDegradesToTechnicalError(t *testing.T) {
	e, mr := newTestEngine(t, &stubClassifier{label: "unknown", confidence: 0.0})
	mr.Close()

	resp := e.Answer(context.Background(), "Montre-moi toutes les dates", "fr", "brief")

	assert.Equal(t, models.IntentAllProgrammes, resp.Intent)
	assert.Equal(t, "Une erreur est survenue.", resp.Answer.Summary)
	assert.True(t, strings.HasPrefix(resp.Answer.Details, "Erreur technique :"))
}

func TestAnswer_NeverReturnsEmptyFields(t *testing.T) {
	e, _ := newTestEngine(t, &stubClassifier{label: models.IntentHours, confidence: 0.75})

	questions := []string{
		"",
		"Quelle heure ?",
		"Y a-t-il un programme enfant ?",
		"Combien d'éditeurs participent ?",
		"Quelque chose de complètement hors sujet",
	}

	for _, q := range questions {
		resp := e.Answer(context.Background(), q, "fr", "")
		require.NotNil(t, resp)
		assert.NotEmpty(t, resp.Answer.Summary, "question %q", q)
		assert.NotEmpty(t, resp.Answer.Details, "question %q", q)
	}
}

func TestHandleFixed_WhenDetailedMentionsBothDates(t *testing.T) {
	e, _ := newTestEngine(t, &stubClassifier{})

	answer, err := e.handleFixed(context.Background(), models.IntentWhenDetailed, models.IntentResult{}, models.ModeDetailed)
	require.NoError(t, err)

	assert.Contains(t, answer.Summary, "28 Avril 2023")
	assert.Contains(t, answer.Details, "débutera le 28 Avril 2023")
	assert.Contains(t, answer.Details, "prendra fin le 07 Mai 2023")
}

func TestHandleFixed_DurationUsesStoredDates(t *testing.T) {
	e, _ := newTestEngine(t, &stubClassifier{})

	answer, err := e.handleFixed(context.Background(), models.IntentDuration, models.IntentResult{}, models.ModeBrief)
	require.NoError(t, err)

	assert.Equal(t, "Le programme global se déroulera du 28 Avril au 07 Mai.", answer.Summary)
}

func TestHandleFixed_ProgrammeByDateMergesWithOriginTags(t *testing.T) {
	e, _ := newTestEngine(t, &stubClassifier{})

	res := models.IntentResult{Entities: map[string]string{models.EntityDate: "28 Avril 2023"}}
	answer, err := e.handleFixed(context.Background(), models.IntentProgrammeByDate, res, models.ModeBrief)
	require.NoError(t, err)

	assert.Equal(t, "Événements du 28 Avril 2023 :", answer.Summary)
	assert.Contains(t, answer.Details, models.AudienceGeneral)
	assert.Contains(t, answer.Details, models.AudienceChildren)
	// General records must appear before children records.
	generalIdx := strings.Index(answer.Details, models.AudienceGeneral)
	childrenIdx := strings.Index(answer.Details, models.AudienceChildren)
	assert.Less(t, generalIdx, childrenIdx)
}

func TestHandleFixed_UnknownDateReportsNoEvents(t *testing.T) {
	e, _ := newTestEngine(t, &stubClassifier{})

	res := models.IntentResult{Entities: map[string]string{models.EntityDate: "15 Mai 2023"}}
	answer, err := e.handleFixed(context.Background(), models.IntentProgrammeByDate, res, models.ModeBrief)
	require.NoError(t, err)

	assert.Equal(t, "Aucun événement trouvé pour le 15 Mai 2023.", answer.Summary)
}

func TestHandleFixed_PriceVariants(t *testing.T) {
	e, _ := newTestEngine(t, &stubClassifier{})

	concert := models.IntentResult{Entities: map[string]string{models.EntityUserInput: "Prix du concert ?"}}
	answer, err := e.handleFixed(context.Background(), models.IntentPrice, concert, models.ModeBrief)
	require.NoError(t, err)
	assert.Equal(t, "Le prix du concert est de 20 TND.", answer.Summary)

	atelier := models.IntentResult{Entities: map[string]string{models.EntityUserInput: "Combien coûte l'atelier ?"}}
	answer, err = e.handleFixed(context.Background(), models.IntentPrice, atelier, models.ModeBrief)
	require.NoError(t, err)
	assert.Equal(t, "Le prix de l'atelier est de 15 TND.", answer.Summary)
}

func TestHandleFixed_ManualIntentsFoldOntoCanonicalAnswers(t *testing.T) {
	e, _ := newTestEngine(t, &stubClassifier{})

	answer, err := e.handleFixed(context.Background(), models.IntentManualHorairesEvenements, models.IntentResult{}, models.ModeBrief)
	require.NoError(t, err)
	assert.Contains(t, answer.Summary, "commencent à 9h du matin")

	answer, err = e.handleFixed(context.Background(), models.IntentManualLieuxEvenements, models.IntentResult{}, models.ModeBrief)
	require.NoError(t, err)
	assert.Contains(t, answer.Summary, "4 stands différents")

	answer, err = e.handleFixed(context.Background(), models.IntentManualDureeGlobale, models.IntentResult{}, models.ModeBrief)
	require.NoError(t, err)
	assert.Equal(t, "10 jours, commence le 28 Avril et termine le 07 Mai.", answer.Summary)
}
