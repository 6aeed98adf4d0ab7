package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore maps negocios/{id}/{col} to the collection "negocios.{id}.{col}"
// and keeps string ids in _id.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &MongoStore{client: client, db: client.Database(dbName)}, nil
}

func CollectionName(ref Ref) string {
	return strings.ReplaceAll(ref.Path(), "/", ".")
}

func (s *MongoStore) col(ref Ref) *mongo.Collection {
	return s.db.Collection(CollectionName(ref))
}

func mongoDocument(raw bson.Raw) Document {
	id, _ := raw.Lookup("_id").StringValueOK()
	return Document{ID: id, decode: func(v interface{}) error {
		return bson.Unmarshal(raw, v)
	}}
}

func (s *MongoStore) List(ctx context.Context, ref Ref, filters ...Filter) ([]Document, error) {
	filter := bson.M{}
	for _, f := range filters {
		filter[f.Field] = f.Value
	}

	cursor, err := s.col(ref).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var raws []bson.Raw
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(raws))
	for _, raw := range raws {
		out = append(out, mongoDocument(raw))
	}
	return out, nil
}

func (s *MongoStore) Get(ctx context.Context, ref Ref, id string) (Document, error) {
	raw, err := s.col(ref).FindOne(ctx, bson.M{"_id": id}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	return mongoDocument(raw), nil
}

func (s *MongoStore) Set(ctx context.Context, ref Ref, id string, doc interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	var body bson.M
	if err := bson.Unmarshal(raw, &body); err != nil {
		return err
	}
	body["_id"] = id

	_, err = s.col(ref).ReplaceOne(ctx, bson.M{"_id": id}, body, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Update(ctx context.Context, ref Ref, id string, fields map[string]interface{}) error {
	result, err := s.col(ref).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, ref Ref, id string) error {
	result, err := s.col(ref).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
