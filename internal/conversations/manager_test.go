package conversation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/eletrodesk/eletrodesk-backend/pkg/config"
	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	"github.com/eletrodesk/eletrodesk-backend/pkg/enums"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
)

type fakeStore struct {
	findActiveFn     func(ctx context.Context, userID string) (*models.Conversation, error)
	createFn         func(ctx context.Context, row *models.Conversation) error
	updateLastFn     func(ctx context.Context, id, preview string) error
	closeActiveFn    func(ctx context.Context, userID, closedBy string) (int64, error)
	insertMessagesFn func(ctx context.Context, rows []models.ChatMessage) error
	listByUserFn     func(ctx context.Context, userID string, limit int) ([]models.Conversation, error)
	listMessagesFn   func(ctx context.Context, userID, conversationID string) ([]models.ChatMessage, error)
}

func (f *fakeStore) FindActiveByUser(ctx context.Context, userID string) (*models.Conversation, error) {
	return f.findActiveFn(ctx, userID)
}

func (f *fakeStore) Create(ctx context.Context, row *models.Conversation) error {
	return f.createFn(ctx, row)
}

func (f *fakeStore) UpdateLastMessage(ctx context.Context, id, preview string) error {
	return f.updateLastFn(ctx, id, preview)
}

func (f *fakeStore) CloseActive(ctx context.Context, userID, closedBy string) (int64, error) {
	return f.closeActiveFn(ctx, userID, closedBy)
}

func (f *fakeStore) InsertMessages(ctx context.Context, rows []models.ChatMessage) error {
	return f.insertMessagesFn(ctx, rows)
}

func (f *fakeStore) ListByUser(ctx context.Context, userID string, limit int) ([]models.Conversation, error) {
	return f.listByUserFn(ctx, userID, limit)
}

func (f *fakeStore) ListMessages(ctx context.Context, userID, conversationID string) ([]models.ChatMessage, error) {
	return f.listMessagesFn(ctx, userID, conversationID)
}

func newTestManager(t *testing.T, store Store) *Manager {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	mgr, err := NewManager(store, logg, config.ChatConfig{PreviewMaxLen: 120})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return mgr
}

func TestEnsureActiveReusesExisting(t *testing.T) {
	store := &fakeStore{
		findActiveFn: func(ctx context.Context, userID string) (*models.Conversation, error) {
			return &models.Conversation{ID: "conv_user-1_100", UserID: userID, Status: enums.ConversationStatusActive}, nil
		},
	}
	mgr := newTestManager(t, store)

	first := mgr.EnsureActive(context.Background(), "user-1")
	second := mgr.EnsureActive(context.Background(), "user-1")
	if first != "conv_user-1_100" || second != first {
		t.Fatalf("expected sequential turns to reuse the id, got %q then %q", first, second)
	}
}

func TestEnsureActiveCreatesWhenMissing(t *testing.T) {
	var created *models.Conversation
	store := &fakeStore{
		findActiveFn: func(ctx context.Context, userID string) (*models.Conversation, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, row *models.Conversation) error {
			created = row
			return nil
		},
	}
	mgr := newTestManager(t, store)
	mgr.now = func() time.Time { return time.UnixMilli(1700000000000) }

	id := mgr.EnsureActive(context.Background(), "user-1")
	if id != "conv_user-1_1700000000000" {
		t.Fatalf("unexpected id %q", id)
	}
	if created == nil || created.Status != enums.ConversationStatusActive {
		t.Fatalf("expected active conversation to be created, got %+v", created)
	}
}

func TestEnsureActiveAdoptsRaceWinner(t *testing.T) {
	calls := 0
	store := &fakeStore{
		findActiveFn: func(ctx context.Context, userID string) (*models.Conversation, error) {
			calls++
			if calls == 1 {
				return nil, gorm.ErrRecordNotFound
			}
			return &models.Conversation{ID: "conv_user-1_winner"}, nil
		},
		createFn: func(ctx context.Context, row *models.Conversation) error {
			return fmt.Errorf(`duplicate key value violates unique constraint "conversations_active_user_idx"`)
		},
	}
	mgr := newTestManager(t, store)

	id := mgr.EnsureActive(context.Background(), "user-1")
	if id != "conv_user-1_winner" {
		t.Fatalf("expected the race winner's id, got %q", id)
	}
}

func TestEnsureActiveDegradesToSynthesizedID(t *testing.T) {
	store := &fakeStore{
		findActiveFn: func(ctx context.Context, userID string) (*models.Conversation, error) {
			return nil, errors.New("connection refused")
		},
	}
	mgr := newTestManager(t, store)
	mgr.now = func() time.Time { return time.UnixMilli(42) }

	id := mgr.EnsureActive(context.Background(), "user-1")
	if id != "conv_user-1_42" {
		t.Fatalf("expected synthesized id, got %q", id)
	}
}

func TestTouchTruncatesPreview(t *testing.T) {
	var gotPreview string
	store := &fakeStore{
		updateLastFn: func(ctx context.Context, id, preview string) error {
			gotPreview = preview
			return nil
		},
	}
	mgr := newTestManager(t, store)

	long := strings.Repeat("ç", 300)
	mgr.Touch(context.Background(), "conv-1", long)
	if got := len([]rune(gotPreview)); got != 120 {
		t.Fatalf("expected preview capped at 120 runes, got %d", got)
	}
}

func TestCloseSurfacesFailure(t *testing.T) {
	store := &fakeStore{
		closeActiveFn: func(ctx context.Context, userID, closedBy string) (int64, error) {
			return 0, errors.New("write failed")
		},
	}
	mgr := newTestManager(t, store)

	if err := mgr.Close(context.Background(), "user-1", "user-1"); err == nil {
		t.Fatal("expected close failure to propagate")
	}
}

func TestCloseWithNothingActiveSucceeds(t *testing.T) {
	store := &fakeStore{
		closeActiveFn: func(ctx context.Context, userID, closedBy string) (int64, error) {
			return 0, nil
		},
	}
	mgr := newTestManager(t, store)

	if err := mgr.Close(context.Background(), "user-1", "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordExchangeSwallowsFailure(t *testing.T) {
	store := &fakeStore{
		insertMessagesFn: func(ctx context.Context, rows []models.ChatMessage) error {
			return errors.New("insert failed")
		},
	}
	mgr := newTestManager(t, store)

	// Must not panic or surface anything.
	mgr.RecordExchange(context.Background(), "conv-1", "user-1", "oi", "olá", ExchangeMetadata{QueryType: "geral"})
}

func TestRecordExchangePersistsBothRoles(t *testing.T) {
	var got []models.ChatMessage
	store := &fakeStore{
		insertMessagesFn: func(ctx context.Context, rows []models.ChatMessage) error {
			got = rows
			return nil
		},
	}
	mgr := newTestManager(t, store)

	mgr.RecordExchange(context.Background(), "conv-1", "user-1", "quantos cabos?", "Temos 80 cabos.", ExchangeMetadata{QueryType: "geral", RelevantCount: 3})
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Role != enums.MessageRoleUser || got[1].Role != enums.MessageRoleAssistant {
		t.Fatalf("expected user then assistant roles, got %s then %s", got[0].Role, got[1].Role)
	}
	if got[0].ConversationID != "conv-1" || got[1].ConversationID != "conv-1" {
		t.Fatal("expected both rows bound to the conversation")
	}
}
