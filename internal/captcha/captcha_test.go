package captcha

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore records the last Put and serves canned Take results.
type stubStore struct {
	putID     string
	putAnswer string
	putTTL    time.Duration
	putErr    error

	takeAnswer string
	takeOK     bool
	takeErr    error
}

func (s *stubStore) Put(_ context.Context, id, answer string, ttl time.Duration) error {
	s.putID, s.putAnswer, s.putTTL = id, answer, ttl
	return s.putErr
}

func (s *stubStore) Take(_ context.Context, _ string) (string, bool, error) {
	return s.takeAnswer, s.takeOK, s.takeErr
}

func TestService_Create(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, 5*time.Minute)

	id, question, err := svc.Create(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, id)
	assert.Equal(t, store.putID, id)
	assert.Equal(t, 5*time.Minute, store.putTTL)

	// The stored answer must be the sum asked in the question.
	var a, b int
	_, err = fmt.Sscanf(question, "¿Cuánto es %d + %d?", &a, &b)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d", a+b), store.putAnswer)
	assert.GreaterOrEqual(t, a, 1)
	assert.LessOrEqual(t, a, 9)
	assert.GreaterOrEqual(t, b, 1)
	assert.LessOrEqual(t, b, 9)
}

func TestService_Create_StoreError(t *testing.T) {
	store := &stubStore{putErr: errors.New("store down")}
	svc := NewService(store, 5*time.Minute)

	_, _, err := svc.Create(context.Background())
	assert.Error(t, err)
}

func TestService_Verify(t *testing.T) {
	tests := []struct {
		name   string
		store  *stubStore
		id     string
		answer string
		want   bool
	}{
		{"correct answer", &stubStore{takeAnswer: "12", takeOK: true}, "id-1", "12", true},
		{"answer with surrounding spaces", &stubStore{takeAnswer: "12", takeOK: true}, "id-1", "  12  ", true},
		{"wrong answer", &stubStore{takeAnswer: "12", takeOK: true}, "id-1", "13", false},
		{"unknown or consumed id", &stubStore{takeOK: false}, "id-1", "12", false},
		{"empty id fails closed", &stubStore{takeAnswer: "12", takeOK: true}, "", "12", false},
		{"empty answer fails closed", &stubStore{takeAnswer: "12", takeOK: true}, "id-1", "", false},
		{"store error fails closed", &stubStore{takeErr: errors.New("store down")}, "id-1", "12", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.store, 5*time.Minute)
			assert.Equal(t, tt.want, svc.Verify(context.Background(), tt.id, tt.answer))
		})
	}
}
