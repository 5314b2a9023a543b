package db

import (
	"context"
	"fmt"

	"github.com/propchain/bridge/pkg/types"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const auditCollection = "bridge_events"

// AuditArchive persists every event envelope the bus emits, giving
// operators a queryable trail of request transitions independent of
// the relational store.
type AuditArchive struct {
	collection *mongo.Collection
}

func NewAuditArchive(ctx context.Context, uri, database string) (*AuditArchive, error) {
	client, err := NewMongoClient(ctx, uri)
	if err != nil {
		return nil, err
	}
	return &AuditArchive{
		collection: client.Database(database).Collection(auditCollection),
	}, nil
}

func (a *AuditArchive) Archive(ctx context.Context, envelope *types.EventEnvelope) error {
	doc := bson.M{
		"envelope_id":       envelope.ID,
		"event":             envelope.Event,
		"destination_chain": string(envelope.DestinationChain),
		"request_id":        envelope.RequestID,
		"emitted_at":        envelope.EmittedAt,
		"data":              fmt.Sprintf("%+v", envelope.Data),
	}
	if _, err := a.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to archive event %s: %w", envelope.Event, err)
	}
	return nil
}

// Run drains the subscription until the context is cancelled or the
// channel closes. Archive failures are logged, never fatal.
func (a *AuditArchive) Run(ctx context.Context, envelopes <-chan *types.EventEnvelope) {
	for {
		select {
		case <-ctx.Done():
			return
		case envelope, ok := <-envelopes:
			if !ok {
				return
			}
			if err := a.Archive(ctx, envelope); err != nil {
				log.Error().Err(err).
					Str("event", envelope.Event).
					Msg("[AuditArchive] [Run] failed to archive event")
			}
		}
	}
}
