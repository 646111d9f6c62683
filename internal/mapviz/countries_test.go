package mapviz

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairbot/internal/common/logger"
	"fairbot/internal/models"
	"fairbot/internal/store"
)

func TestCorrectCountry(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"exact", "Tunisie", "Tunisie"},
		{"case insensitive", "tunisie", "Tunisie"},
		{"missing accent", "Egypte", "Égypte"},
		{"missing letter", "Tunsie", "Tunisie"},
		{"empty", "", UnknownCountry},
		{"unrecognizable", "Atlantide", UnknownCountry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CorrectCountry(tt.raw))
		})
	}
}

func TestTally(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	exhibitors := []models.Exhibitor{
		{Name: "Maison Khrif pour l'Édition", Country: "Tunisie", Stand: 400},
		{Name: "Sweeps", Country: "Tunisie", Stand: 401},
		{Name: "StepPublishing", Country: "Maroc", Stand: 403},
		{Name: "Dar El Maaref", Country: "Egypte", Stand: 501},
		{Name: "Éditions Fantômes", Country: "Atlantide", Stand: 999},
	}
	for _, ex := range exhibitors {
		raw, err := json.Marshal(ex)
		require.NoError(t, err)
		require.NoError(t, rdb.RPush(context.Background(), store.CollectionExhibitors, raw).Err())
	}

	builder := NewBuilder(store.NewEventStore(rdb, logger.Nop()), logger.Nop())
	tallies, err := builder.Tally(context.Background())
	require.NoError(t, err)

	// ValidCountries order, Inconnu last. The unaccented "Egypte" record
	// tallies under the canonical accented name.
	require.Len(t, tallies, 4)
	assert.Equal(t, CountryTally{Country: "Tunisie", Count: 2}, tallies[0])
	assert.Equal(t, CountryTally{Country: "Égypte", Count: 1}, tallies[1])
	assert.Equal(t, CountryTally{Country: "Maroc", Count: 1}, tallies[2])
	assert.Equal(t, CountryTally{Country: UnknownCountry, Count: 1}, tallies[3])
}
