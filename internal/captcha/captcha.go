package captcha

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store keeps pending challenges. Take must remove the record atomically so
// two concurrent verifications of the same id cannot both observe it.
type Store interface {
	Put(ctx context.Context, id, answer string, ttl time.Duration) error
	Take(ctx context.Context, id string) (answer string, ok bool, err error)
}

// Service issues and verifies simple arithmetic challenges.
type Service struct {
	store Store
	ttl   time.Duration
}

func NewService(store Store, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl}
}

// Create issues a new challenge and returns its id and question text.
func (s *Service) Create(ctx context.Context) (id, question string, err error) {
	a := rand.IntN(9) + 1
	b := rand.IntN(9) + 1

	id = uuid.NewString()
	question = fmt.Sprintf("¿Cuánto es %d + %d?", a, b)

	if err := s.store.Put(ctx, id, strconv.Itoa(a+b), s.ttl); err != nil {
		return "", "", fmt.Errorf("failed to store captcha: %w", err)
	}

	return id, question, nil
}

// Verify consumes the challenge and reports whether the answer matches.
// It fails closed: unknown, already consumed or expired challenges, and
// store errors, all come back false. The record is gone either way.
func (s *Service) Verify(ctx context.Context, id, answer string) bool {
	if id == "" || answer == "" {
		return false
	}

	expected, ok, err := s.store.Take(ctx, id)
	if err != nil {
		log.Printf("[CAPTCHA] store error on verify: %v", err)
		return false
	}
	if !ok {
		return false
	}

	return strings.TrimSpace(answer) == expected
}
