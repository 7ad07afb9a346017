package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditEntry records one admin mutation against the upstream store,
// whatever its outcome.
type AuditEntry struct {
	ID      string    `bson:"_id,omitempty" json:"id"`
	Action  string    `bson:"action" json:"action"` // create | update | delete
	EventID string    `bson:"eventId" json:"eventId"`
	ActorID int64     `bson:"actorId" json:"actorId"`
	Success bool      `bson:"success" json:"success"`
	Message string    `bson:"message" json:"message"`
	At      time.Time `bson:"at" json:"at"`
}

type mongoAuditRepo struct {
	col *mongo.Collection
}

func NewMongoAuditRepository(col *mongo.Collection) AuditRepository {
	return &mongoAuditRepo{col: col}
}

func (r *mongoAuditRepo) Record(e *AuditEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, e)
	return err
}

func (r *mongoAuditRepo) Recent(limit int64) ([]AuditEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []AuditEntry
	for cur.Next(ctx) {
		var e AuditEntry
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}
