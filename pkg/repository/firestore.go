package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore implements Repository using Cloud Firestore. Records live
// under users/{ownerID}/{kind}History/{recordID}.
type Firestore struct {
	client *firestore.Client
}

// New creates a new Firestore repository
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID),
			goerr.V("database", databaseID))
	}

	return &Firestore{client: client}, nil
}

// Close releases the underlying client
func (r *Firestore) Close() error {
	return r.client.Close()
}

func (r *Firestore) collection(ownerID string, kind model.Kind) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(ownerID).Collection(kind.Collection())
}

func (r *Firestore) PutRecord(ctx context.Context, record *model.Record) error {
	doc := r.collection(record.OwnerID, record.Kind).Doc(string(record.ID))
	if _, err := doc.Create(ctx, record); err != nil {
		return goerr.Wrap(err, "failed to create record",
			goerr.V("record_id", record.ID),
			goerr.T(model.ErrTagStore))
	}
	return nil
}

func (r *Firestore) GetRecord(ctx context.Context, ownerID string, kind model.Kind, id model.RecordID) (*model.Record, error) {
	snap, err := r.collection(ownerID, kind).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(err, "record not found",
				goerr.V("record_id", id),
				goerr.T(model.ErrTagNotFound))
		}
		return nil, goerr.Wrap(err, "failed to get record",
			goerr.V("record_id", id),
			goerr.T(model.ErrTagStore))
	}

	var record model.Record
	if err := snap.DataTo(&record); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal record",
			goerr.V("record_id", id),
			goerr.T(model.ErrTagStore))
	}

	return &record, nil
}

func (r *Firestore) AppendChatTurns(ctx context.Context, ownerID string, id model.RecordID, userTurn, modelTurn model.Turn) error {
	doc := r.collection(ownerID, model.KindChat).Doc(string(id))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(doc)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(err, "record not found",
					goerr.V("record_id", id),
					goerr.T(model.ErrTagNotFound))
			}
			return err
		}

		var record model.Record
		if err := snap.DataTo(&record); err != nil {
			return err
		}

		turns := append(record.Turns, userTurn, modelTurn)
		return tx.Update(doc, []firestore.Update{
			{Path: "turns", Value: turns},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		if goerr.HasTag(err, model.ErrTagNotFound) {
			return err
		}
		return goerr.Wrap(err, "failed to append chat turns",
			goerr.V("record_id", id),
			goerr.T(model.ErrTagStore))
	}

	return nil
}

func (r *Firestore) ListRecords(ctx context.Context, ownerID string, kind model.Kind, limit int) ([]*model.Record, error) {
	query := r.collection(ownerID, kind).OrderBy("updatedAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var records []*model.Record
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list records",
				goerr.V("kind", kind),
				goerr.T(model.ErrTagStore))
		}

		var record model.Record
		if err := snap.DataTo(&record); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal record",
				goerr.V("doc_id", snap.Ref.ID),
				goerr.T(model.ErrTagStore))
		}
		records = append(records, &record)
	}

	return records, nil
}

func (r *Firestore) UpdateTitle(ctx context.Context, ownerID string, kind model.Kind, id model.RecordID, title string) error {
	doc := r.collection(ownerID, kind).Doc(string(id))
	_, err := doc.Update(ctx, []firestore.Update{
		{Path: "title", Value: title},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(err, "record not found",
				goerr.V("record_id", id),
				goerr.T(model.ErrTagNotFound))
		}
		return goerr.Wrap(err, "failed to update title",
			goerr.V("record_id", id),
			goerr.T(model.ErrTagStore))
	}
	return nil
}

func (r *Firestore) DeleteRecord(ctx context.Context, ownerID string, kind model.Kind, id model.RecordID) error {
	doc := r.collection(ownerID, kind).Doc(string(id))
	_, err := doc.Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound || status.Code(err) == codes.FailedPrecondition {
			return goerr.Wrap(err, "record not found",
				goerr.V("record_id", id),
				goerr.T(model.ErrTagNotFound))
		}
		return goerr.Wrap(err, "failed to delete record",
			goerr.V("record_id", id),
			goerr.T(model.ErrTagStore))
	}
	return nil
}

func (r *Firestore) CountRecords(ctx context.Context, ownerID string, kind model.Kind) (int, error) {
	iter := r.collection(ownerID, kind).Select().Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count records",
				goerr.V("kind", kind),
				goerr.T(model.ErrTagStore))
		}
		count++
	}

	return count, nil
}
