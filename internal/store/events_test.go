package store

import (
	"context"
	"testing"

	apperrors "fairbot/internal/common/errors"
	"fairbot/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*EventStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewEventStore(rdb, logger.Nop()), mr
}

func TestEventStore_SeedAndFindByDate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SeedDefaults(ctx))

	docs, err := s.FindByDate(ctx, CollectionGeneral, "28 Avril 2023")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.Equal(t, "Cérémonie d'ouverture", docs[0]["titre"])

	// Exact string match only: a different format is a different date.
	docs, err = s.FindByDate(ctx, CollectionGeneral, "28 avril 2023")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestEventStore_SeedDefaults_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SeedDefaults(ctx))
	require.NoError(t, s.SeedDefaults(ctx))

	docs, err := s.All(ctx, CollectionGeneral)
	require.NoError(t, err)
	assert.Len(t, docs, len(defaultGeneralSessions))
}

func TestEventStore_DistinctDates(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SeedDefaults(ctx))

	dates, err := s.DistinctDates(ctx, CollectionGeneral)
	require.NoError(t, err)
	assert.Equal(t, []string{"28 Avril 2023", "29 Avril 2023", "02 Mai 2023", "07 Mai 2023"}, dates)
}

func TestEventStore_All_SkipsMalformedDocuments(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	mr.RPush(CollectionGeneral, `{"date":"28 Avril 2023","titre":"ok"}`)
	mr.RPush(CollectionGeneral, `not json at all`)
	mr.RPush(CollectionGeneral, `{"date":"29 Avril 2023"}`)

	docs, err := s.All(ctx, CollectionGeneral)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestEventStore_Seed_RejectsInvalidDocuments(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	err := s.Seed(ctx, CollectionGeneral, sessionSchema, []map[string]interface{}{
		{"titre": "sans date"},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rejected")
}

func TestEventStore_QueryFailureCarriesErrorCode(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()

	_, err := s.All(context.Background(), CollectionGeneral)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueryFailed)

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeDatastoreQueryFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestEventStore_Exhibitors(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SeedDefaults(ctx))

	exhibitors, err := s.Exhibitors(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, exhibitors)
	assert.Equal(t, "Jordanie", exhibitors[0].Country)
	assert.Equal(t, 205, exhibitors[0].Stand)
}

func TestParseDate_FrenchMonths(t *testing.T) {
	tests := []struct {
		in      string
		wantDay int
		wantOK  bool
	}{
		{"28 Avril 2023", 28, true},
		{"07 Mai 2023", 7, true},
		{"2 mai 2023", 2, true},
		{"28 April 2023", 28, true},
		{"pas une date", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if !tt.wantOK {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDay, got.Day())
		})
	}
}

func TestSortDates(t *testing.T) {
	in := []string{"07 Mai 2023", "28 Avril 2023", "02 Mai 2023"}
	assert.Equal(t, []string{"28 Avril 2023", "02 Mai 2023", "07 Mai 2023"}, SortDates(in))
}
