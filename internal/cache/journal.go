package cache

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"frontdesk-backend/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// PendingMutationsKey is the Redis hash holding unfinished two-step operations
const PendingMutationsKey = "frontdesk:pending_mutations"

// Journal records two-step spreadsheet operations between their steps so a
// failure after the first step can be finished instead of repeated. Entries
// live in Redis when a client is given, otherwise in process memory.
type Journal struct {
	rdb hashClient

	mu      sync.Mutex
	entries map[string]models.PendingMutation
}

// hashClient is the part of the Redis client the journal uses.
type hashClient interface {
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
}

func NewJournal(rdb *redis.Client) *Journal {
	j := &Journal{entries: make(map[string]models.PendingMutation)}
	if rdb != nil {
		j.rdb = rdb
	}
	return j
}

// Record stores m, assigning an id when it has none.
func (j *Journal) Record(ctx context.Context, m *models.PendingMutation) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	if j.rdb == nil {
		j.mu.Lock()
		j.entries[m.ID] = *m
		j.mu.Unlock()
		return nil
	}

	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return j.rdb.HSet(ctx, PendingMutationsKey, m.ID, data).Err()
}

// Resolve removes a finished entry.
func (j *Journal) Resolve(ctx context.Context, id string) error {
	if j.rdb == nil {
		j.mu.Lock()
		delete(j.entries, id)
		j.mu.Unlock()
		return nil
	}
	return j.rdb.HDel(ctx, PendingMutationsKey, id).Err()
}

// List returns every open entry, oldest first.
func (j *Journal) List(ctx context.Context) ([]models.PendingMutation, error) {
	var out []models.PendingMutation

	if j.rdb == nil {
		j.mu.Lock()
		for _, m := range j.entries {
			out = append(out, m)
		}
		j.mu.Unlock()
	} else {
		raw, err := j.rdb.HGetAll(ctx, PendingMutationsKey).Result()
		if err != nil {
			return nil, err
		}
		for id, v := range raw {
			var m models.PendingMutation
			if err := json.Unmarshal([]byte(v), &m); err != nil {
				log.Warn().Err(err).Str("journal_id", id).Msg("[Journal] Skipping undecodable entry")
				continue
			}
			out = append(out, m)
		}
	}

	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.Before(out[b].CreatedAt) })
	return out, nil
}

// Find returns the open entry for an operation on exactly this patient record.
func (j *Journal) Find(ctx context.Context, operation string, p models.Patient) (*models.PendingMutation, error) {
	entries, err := j.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Operation == operation && entries[i].Patient == p {
			return &entries[i], nil
		}
	}
	return nil, nil
}
