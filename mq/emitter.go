package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Channel carries recipe lifecycle events for downstream consumers
// (search indexers, activity feeds).
const Channel = "recipe-events"

const (
	RecipeCreated = "recipe.created"
	RecipeUpdated = "recipe.updated"
	RecipeDeleted = "recipe.deleted"
	RecipeLiked   = "recipe.liked"
)

// Event is the published payload.
type Event struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	RecipeID string    `json:"recipeId"`
	UserID   string    `json:"userId"`
	At       time.Time `json:"at"`
}

// Emitter publishes events to Redis. A nil Emitter is valid and drops
// everything, so the service runs without Redis configured.
type Emitter struct {
	rdb *redis.Client
}

// NewEmitter connects to Redis, or returns nil when no address is set.
func NewEmitter(addr, password string) *Emitter {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &Emitter{rdb: rdb}
}

// Emit publishes one event. Failures are logged, never propagated: eventing
// must not fail a request that already committed to the store.
func (e *Emitter) Emit(ctx context.Context, eventType, recipeID, userID string) {
	if e == nil {
		return
	}

	data, err := json.Marshal(Event{
		ID:       uuid.New().String(),
		Type:     eventType,
		RecipeID: recipeID,
		UserID:   userID,
		At:       time.Now().UTC(),
	})
	if err != nil {
		log.Printf("mq: marshal event: %v", err)
		return
	}

	if err := e.rdb.Publish(ctx, Channel, data).Err(); err != nil {
		log.Printf("mq: publish %s for %s: %v", eventType, recipeID, err)
	}
}

func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	return e.rdb.Close()
}
