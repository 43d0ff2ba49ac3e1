package repository

import (
	"context"

	"github.com/m-mizutani/aiforge/pkg/model"
)

// Repository defines the interface for history record persistence.
// Every operation is scoped to an owner; records are never visible
// across owners.
type Repository interface {
	// PutRecord saves a new record
	PutRecord(ctx context.Context, record *model.Record) error

	// GetRecord retrieves a record by ID
	GetRecord(ctx context.Context, ownerID string, kind model.Kind, id model.RecordID) (*model.Record, error)

	// AppendChatTurns atomically appends a user/model turn pair to a chat record
	AppendChatTurns(ctx context.Context, ownerID string, id model.RecordID, userTurn, modelTurn model.Turn) error

	// ListRecords retrieves records ordered by recency (descending).
	// A limit of 0 means no limit.
	ListRecords(ctx context.Context, ownerID string, kind model.Kind, limit int) ([]*model.Record, error)

	// UpdateTitle replaces the title of an existing record
	UpdateTitle(ctx context.Context, ownerID string, kind model.Kind, id model.RecordID, title string) error

	// DeleteRecord permanently removes a record
	DeleteRecord(ctx context.Context, ownerID string, kind model.Kind, id model.RecordID) error

	// CountRecords returns the number of records of the given kind
	CountRecords(ctx context.Context, ownerID string, kind model.Kind) (int, error)
}
