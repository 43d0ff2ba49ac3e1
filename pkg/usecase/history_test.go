package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/aiforge/pkg/repository"
	"github.com/m-mizutani/aiforge/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestRenameHistory(t *testing.T) {
	repo := repository.NewMemory()
	uc := usecase.New(repo, &mockGemini{})
	ctx := context.Background()

	putRecord(t, repo, "user-1", model.KindCode)
	records, err := uc.ListHistory(ctx, "user-1", model.KindCode, 0)
	gt.NoError(t, err)
	gt.A(t, records).Length(1)

	gt.NoError(t, uc.RenameHistory(ctx, "user-1", model.KindCode, records[0].ID, "better name"))

	got, err := uc.GetHistory(ctx, "user-1", model.KindCode, records[0].ID)
	gt.NoError(t, err)
	gt.Equal(t, got.Title, "better name")
}

func TestRenameHistoryEmptyTitle(t *testing.T) {
	repo := repository.NewMemory()
	uc := usecase.New(repo, &mockGemini{})

	err := uc.RenameHistory(context.Background(), "user-1", model.KindChat, model.NewRecordID(), "")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagInvalidInput))
}

func TestDeleteHistory(t *testing.T) {
	repo := repository.NewMemory()
	uc := usecase.New(repo, &mockGemini{})
	ctx := context.Background()

	putRecord(t, repo, "user-1", model.KindImage)
	records, err := uc.ListHistory(ctx, "user-1", model.KindImage, 0)
	gt.NoError(t, err)
	gt.A(t, records).Length(1)

	gt.NoError(t, uc.DeleteHistory(ctx, "user-1", model.KindImage, records[0].ID))

	_, err = uc.GetHistory(ctx, "user-1", model.KindImage, records[0].ID)
	gt.True(t, goerr.HasTag(err, model.ErrTagNotFound))

	remaining, err := uc.ListHistory(ctx, "user-1", model.KindImage, 0)
	gt.NoError(t, err)
	gt.A(t, remaining).Length(0)
}
