package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/aiforge/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func setupFirestore(t *testing.T) *repository.Firestore {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	if projectID == "" || databaseID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID and TEST_FIRESTORE_DATABASE_ID must be set to run Firestore tests")
	}

	repo, err := repository.New(context.Background(), projectID, databaseID)
	gt.NoError(t, err)
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})

	return repo
}

func TestFirestorePutAndGetRecord(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	record := newChatRecord("test-owner", "hello firestore", "hi", time.Now())
	gt.NoError(t, repo.PutRecord(ctx, record))

	got, err := repo.GetRecord(ctx, "test-owner", model.KindChat, record.ID)
	gt.NoError(t, err)
	gt.Equal(t, got.ID, record.ID)
	gt.Equal(t, got.Title, record.Title)
	gt.A(t, got.Turns).Length(2)

	gt.NoError(t, repo.DeleteRecord(ctx, "test-owner", model.KindChat, record.ID))
}

func TestFirestoreAppendChatTurns(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	record := newChatRecord("test-owner", "first", "reply", time.Now())
	gt.NoError(t, repo.PutRecord(ctx, record))

	err := repo.AppendChatTurns(ctx, "test-owner", record.ID,
		model.Turn{Role: model.RoleUser, Text: "second"},
		model.Turn{Role: model.RoleModel, Text: "another reply"})
	gt.NoError(t, err)

	got, err := repo.GetRecord(ctx, "test-owner", model.KindChat, record.ID)
	gt.NoError(t, err)
	gt.A(t, got.Turns).Length(4)
	gt.Equal(t, got.Turns[2].Text, "second")
	gt.True(t, got.UpdatedAt.After(record.UpdatedAt))

	gt.NoError(t, repo.DeleteRecord(ctx, "test-owner", model.KindChat, record.ID))
}

func TestFirestoreGetMissing(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	_, err := repo.GetRecord(ctx, "test-owner", model.KindChat, model.NewRecordID())
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagNotFound))
}
