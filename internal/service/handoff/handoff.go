// Package handoff carries payloads between pages across a navigation: the
// expiry/restock selections headed for the order cart and the pending order
// headed for the payment page. Entries are redeemed exactly once.
package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound reports a key that was never stashed, already redeemed, or
// expired.
var ErrNotFound = errors.New("handoff entry not found")

// Entry is one stashed payload.
type Entry struct {
	Key       string          `bson:"key" json:"key"`
	Kind      string          `bson:"kind" json:"kind"`
	Payload   json.RawMessage `bson:"payload" json:"payload"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
}

// Repository is the storage contract: Put stores an entry, Take atomically
// fetches and deletes it.
type Repository interface {
	Put(ctx context.Context, entry Entry) error
	Take(ctx context.Context, key string) (*Entry, error)
}

// Service wraps a Repository with key generation and read-once semantics.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a handoff service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Stash stores a payload under a fresh key and returns the key.
func (s *Service) Stash(ctx context.Context, kind string, payload json.RawMessage) (string, error) {
	entry := Entry{
		Key:       uuid.NewString(),
		Kind:      kind,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, entry); err != nil {
		return "", err
	}

	s.logger.Debug("handoff stashed", zap.String("kind", kind), zap.String("key", entry.Key))
	return entry.Key, nil
}

// Redeem fetches and deletes the entry for a key. A second redeem of the same
// key returns ErrNotFound.
func (s *Service) Redeem(ctx context.Context, key string) (*Entry, error) {
	entry, err := s.repo.Take(ctx, key)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("handoff redeemed", zap.String("kind", entry.Kind), zap.String("key", key))
	return entry, nil
}
