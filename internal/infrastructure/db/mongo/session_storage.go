package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/diaglab/labdesk/internal/core/ports"
)

type sessionDocument struct {
	Namespace string    `bson:"_id"`
	Identity  string    `bson:"identity"`
	Token     string    `bson:"token"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// SessionStorage keeps the session as a single document per namespace, so
// both halves are written and removed together.
type SessionStorage struct {
	db        *mongo.Database
	namespace string
}

func NewSessionStorage(db *mongo.Database, namespace string) *SessionStorage {
	return &SessionStorage{db: db, namespace: namespace}
}

var _ ports.SessionStorage = (*SessionStorage)(nil)

func (s *SessionStorage) Load(ctx context.Context) (ports.SessionRecord, error) {
	var doc sessionDocument
	err := s.db.Collection(sessionsCollection).FindOne(ctx, bson.M{"_id": s.namespace}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ports.SessionRecord{}, nil
	}
	if err != nil {
		return ports.SessionRecord{}, fmt.Errorf("load session: %w", err)
	}

	rec := ports.SessionRecord{Token: doc.Token}
	if doc.Identity != "" {
		rec.Identity = []byte(doc.Identity)
	}
	return rec, nil
}

func (s *SessionStorage) Save(ctx context.Context, rec ports.SessionRecord) error {
	update := bson.M{"$set": bson.M{
		"identity":   string(rec.Identity),
		"token":      rec.Token,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := s.db.Collection(sessionsCollection).UpdateByID(ctx, s.namespace, update, opts); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Delete(ctx context.Context) error {
	if _, err := s.db.Collection(sessionsCollection).DeleteOne(ctx, bson.M{"_id": s.namespace}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}
