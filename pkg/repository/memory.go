package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Memory is an in-memory Repository for tests and local development
type Memory struct {
	mu      sync.RWMutex
	records map[string]map[model.Kind]map[model.RecordID]*model.Record
}

// NewMemory creates a new in-memory repository
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]map[model.Kind]map[model.RecordID]*model.Record),
	}
}

// bucket returns the owner/kind partition, creating it if needed.
// Callers must hold the write lock.
func (r *Memory) bucket(ownerID string, kind model.Kind) map[model.RecordID]*model.Record {
	kinds, ok := r.records[ownerID]
	if !ok {
		kinds = make(map[model.Kind]map[model.RecordID]*model.Record)
		r.records[ownerID] = kinds
	}
	bucket, ok := kinds[kind]
	if !ok {
		bucket = make(map[model.RecordID]*model.Record)
		kinds[kind] = bucket
	}
	return bucket
}

// lookup returns the partition without creating it. Safe under the read lock.
func (r *Memory) lookup(ownerID string, kind model.Kind) map[model.RecordID]*model.Record {
	return r.records[ownerID][kind]
}

func errRecordNotFound(id model.RecordID) error {
	return goerr.New("record not found",
		goerr.V("record_id", id),
		goerr.T(model.ErrTagNotFound))
}

func (r *Memory) PutRecord(ctx context.Context, record *model.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket := r.bucket(record.OwnerID, record.Kind)
	if _, exists := bucket[record.ID]; exists {
		return goerr.New("record already exists",
			goerr.V("record_id", record.ID),
			goerr.T(model.ErrTagStore))
	}
	bucket[record.ID] = record.Clone()
	return nil
}

func (r *Memory) GetRecord(ctx context.Context, ownerID string, kind model.Kind, id model.RecordID) (*model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.lookup(ownerID, kind)[id]
	if !ok {
		return nil, errRecordNotFound(id)
	}
	return record.Clone(), nil
}

func (r *Memory) AppendChatTurns(ctx context.Context, ownerID string, id model.RecordID, userTurn, modelTurn model.Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.bucket(ownerID, model.KindChat)[id]
	if !ok {
		return errRecordNotFound(id)
	}
	record.Turns = append(record.Turns, userTurn, modelTurn)
	record.UpdatedAt = time.Now()
	return nil
}

func (r *Memory) ListRecords(ctx context.Context, ownerID string, kind model.Kind, limit int) ([]*model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.lookup(ownerID, kind)
	records := make([]*model.Record, 0, len(bucket))
	for _, record := range bucket {
		records = append(records, record.Clone())
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (r *Memory) UpdateTitle(ctx context.Context, ownerID string, kind model.Kind, id model.RecordID, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.lookup(ownerID, kind)[id]
	if !ok {
		return errRecordNotFound(id)
	}
	record.Title = title
	record.UpdatedAt = time.Now()
	return nil
}

func (r *Memory) DeleteRecord(ctx context.Context, ownerID string, kind model.Kind, id model.RecordID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket := r.bucket(ownerID, kind)
	if _, ok := bucket[id]; !ok {
		return errRecordNotFound(id)
	}
	delete(bucket, id)
	return nil
}

func (r *Memory) CountRecords(ctx context.Context, ownerID string, kind model.Kind) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.lookup(ownerID, kind)), nil
}
