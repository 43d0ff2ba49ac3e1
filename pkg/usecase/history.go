package usecase

import (
	"context"

	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// ListHistory returns records of the given kind for one owner, most
// recently updated first. limit 0 means no limit.
func (uc *UseCases) ListHistory(ctx context.Context, ownerID string, kind model.Kind, limit int) ([]*model.Record, error) {
	records, err := uc.repo.ListRecords(ctx, ownerID, kind, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list history", goerr.V("kind", kind))
	}
	return records, nil
}

// GetHistory loads a single record for session resumption
func (uc *UseCases) GetHistory(ctx context.Context, ownerID string, kind model.Kind, id model.RecordID) (*model.Record, error) {
	record, err := uc.repo.GetRecord(ctx, ownerID, kind, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get history", goerr.V("record_id", id))
	}
	return record, nil
}

// RenameHistory replaces a record's title
func (uc *UseCases) RenameHistory(ctx context.Context, ownerID string, kind model.Kind, id model.RecordID, title string) error {
	if title == "" {
		return goerr.New("title is required", goerr.T(model.ErrTagInvalidInput))
	}
	if err := uc.repo.UpdateTitle(ctx, ownerID, kind, id, title); err != nil {
		return goerr.Wrap(err, "failed to rename history", goerr.V("record_id", id))
	}
	return nil
}

// DeleteHistory permanently removes a record
func (uc *UseCases) DeleteHistory(ctx context.Context, ownerID string, kind model.Kind, id model.RecordID) error {
	if err := uc.repo.DeleteRecord(ctx, ownerID, kind, id); err != nil {
		return goerr.Wrap(err, "failed to delete history", goerr.V("record_id", id))
	}
	return nil
}
