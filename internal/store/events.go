// Package store implements the event datastore on Redis: two logical
// programme collections plus the exhibitor collection, all schema-less JSON
// documents. Read paths preserve document insertion order.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "fairbot/internal/common/errors"
	"fairbot/internal/common/logger"
	"fairbot/internal/models"

	"github.com/redis/go-redis/v9"
)

// Logical collection keys.
const (
	CollectionGeneral    = "programmes:general"
	CollectionChildren   = "programmes:children"
	CollectionExhibitors = "editeurs:foire"
)

var ErrQueryFailed = errors.New("DATASTORE_QUERY_FAILED")

type EventStore struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewEventStore(rdb *redis.Client, log logger.Logger) *EventStore {
	return &EventStore{
		rdb: rdb,
		logger: log.With(map[string]interface{}{
			"component": "event-store",
		}),
	}
}

// All returns every document of a collection in insertion order. Documents
// that fail to decode are skipped with a warning, never an error.
func (s *EventStore) All(ctx context.Context, collection string) ([]map[string]interface{}, error) {
	raw, err := s.rdb.LRange(ctx, collection, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, apperrors.NewDatastoreQueryFailedError(collection, err))
	}

	docs := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		var doc map[string]interface{}
		if err := json.Unmarshal([]byte(item), &doc); err != nil {
			s.logger.Warn("skipping malformed document", map[string]interface{}{
				"collection": collection,
				"error":      err.Error(),
			})
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// FindByDate returns the documents whose "date" field exactly matches.
// The date is a plain string, not a date type.
func (s *EventStore) FindByDate(ctx context.Context, collection, date string) ([]map[string]interface{}, error) {
	docs, err := s.All(ctx, collection)
	if err != nil {
		return nil, err
	}

	matched := make([]map[string]interface{}, 0)
	for _, doc := range docs {
		if d, ok := doc["date"].(string); ok && d == date {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

// DistinctDates enumerates the distinct "date" values of a collection,
// first-seen order.
func (s *EventStore) DistinctDates(ctx context.Context, collection string) ([]string, error) {
	docs, err := s.All(ctx, collection)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	dates := make([]string, 0)
	for _, doc := range docs {
		d, ok := doc["date"].(string)
		if !ok || d == "" || seen[d] {
			continue
		}
		seen[d] = true
		dates = append(dates, d)
	}
	return dates, nil
}

// Exhibitors returns the exhibitor collection as typed records.
func (s *EventStore) Exhibitors(ctx context.Context) ([]models.Exhibitor, error) {
	raw, err := s.rdb.LRange(ctx, CollectionExhibitors, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, apperrors.NewDatastoreQueryFailedError(CollectionExhibitors, err))
	}

	exhibitors := make([]models.Exhibitor, 0, len(raw))
	for _, item := range raw {
		var ex models.Exhibitor
		if err := json.Unmarshal([]byte(item), &ex); err != nil {
			s.logger.Warn("skipping malformed exhibitor", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		exhibitors = append(exhibitors, ex)
	}
	return exhibitors, nil
}
