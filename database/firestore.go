package database

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore reads and writes the literal negocios/{id}/{col}/{doc}
// paths, so it works against data written by the web client.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(ctx context.Context, projectID string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &FirestoreStore{client: client}, nil
}

func snapshotDocument(snap *firestore.DocumentSnapshot) Document {
	return Document{ID: snap.Ref.ID, decode: snap.DataTo}
}

func notFound(err error) error {
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (s *FirestoreStore) List(ctx context.Context, ref Ref, filters ...Filter) ([]Document, error) {
	q := s.client.Collection(ref.Path()).Query
	for _, f := range filters {
		q = q.Where(f.Field, "==", f.Value)
	}
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, snapshotDocument(snap))
	}
	return out, nil
}

func (s *FirestoreStore) Get(ctx context.Context, ref Ref, id string) (Document, error) {
	snap, err := s.client.Collection(ref.Path()).Doc(id).Get(ctx)
	if err != nil {
		return Document{}, notFound(err)
	}
	return snapshotDocument(snap), nil
}

func (s *FirestoreStore) Set(ctx context.Context, ref Ref, id string, doc interface{}) error {
	_, err := s.client.Collection(ref.Path()).Doc(id).Set(ctx, doc)
	return err
}

func (s *FirestoreStore) Update(ctx context.Context, ref Ref, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	_, err := s.client.Collection(ref.Path()).Doc(id).Update(ctx, updates)
	return notFound(err)
}

func (s *FirestoreStore) Delete(ctx context.Context, ref Ref, id string) error {
	_, err := s.client.Collection(ref.Path()).Doc(id).Delete(ctx, firestore.Exists)
	return notFound(err)
}

func (s *FirestoreStore) Close(context.Context) error {
	return s.client.Close()
}
