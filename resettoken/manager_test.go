package resettoken_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	resettokenmocks "github.com/nlhsang/chat-account/mocks/repository/resettoken"
	"github.com/nlhsang/chat-account/model"
	"github.com/nlhsang/chat-account/resettoken"
	"github.com/stretchr/testify/mock"
)

func sha256hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestManager_Create(t *testing.T) {
	t.Run("replaces old tokens and stores only the hash", func(t *testing.T) {
		repo := resettokenmocks.NewResetTokenRepository(t)

		var stored *model.ResetTokenEntity
		repo.On("DeleteByAccount", mock.Anything, uint64(42)).Return(nil).Once()
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.ResetTokenEntity")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*model.ResetTokenEntity)
			}).
			Return(nil).Once()
		repo.On("ReapExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(nil).Once()

		m := resettoken.NewManager(repo, 10*time.Minute)

		raw, err := m.Create(context.Background(), 42)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		// 32 random bytes hex-encoded plus the account id suffix.
		if len(raw) != 64+2 || !strings.HasSuffix(raw, "42") {
			t.Fatalf("raw secret = %q, want 64 hex chars followed by account id", raw)
		}
		if stored.AccountID != 42 {
			t.Fatalf("stored account id = %d, want 42", stored.AccountID)
		}
		if stored.TokenHash != sha256hex(raw) {
			t.Fatalf("stored hash = %q, want sha256 of raw secret", stored.TokenHash)
		}
		if strings.Contains(stored.TokenHash, raw) {
			t.Fatal("raw secret must not be persisted")
		}
		if got := stored.ExpiresAt.Sub(stored.CreatedAt); got != 10*time.Minute {
			t.Fatalf("validity window = %v, want 10m", got)
		}
	})

	t.Run("error: delete of previous tokens fails", func(t *testing.T) {
		repo := resettokenmocks.NewResetTokenRepository(t)
		repo.On("DeleteByAccount", mock.Anything, uint64(42)).
			Return(errors.New("db error")).Once()

		m := resettoken.NewManager(repo, 10*time.Minute)

		if _, err := m.Create(context.Background(), 42); err == nil {
			t.Fatal("Create() expected error")
		}
	})

	t.Run("reap failure does not fail the create", func(t *testing.T) {
		repo := resettokenmocks.NewResetTokenRepository(t)
		repo.On("DeleteByAccount", mock.Anything, uint64(42)).Return(nil).Once()
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.ResetTokenEntity")).Return(nil).Once()
		repo.On("ReapExpired", mock.Anything, mock.AnythingOfType("time.Time")).
			Return(errors.New("db error")).Once()

		m := resettoken.NewManager(repo, 10*time.Minute)

		if _, err := m.Create(context.Background(), 42); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	})
}

func TestManager_Consume(t *testing.T) {
	t.Run("success: resolves and deletes the token", func(t *testing.T) {
		repo := resettokenmocks.NewResetTokenRepository(t)
		repo.On("GetByHash", mock.Anything, sha256hex("rawsecret42"), mock.AnythingOfType("time.Time")).
			Return(&model.ResetTokenEntity{ID: 7, AccountID: 42}, nil).Once()
		repo.On("DeleteByID", mock.Anything, uint64(7)).
			Return(int64(1), nil).Once()

		m := resettoken.NewManager(repo, 10*time.Minute)

		accountID, err := m.Consume(context.Background(), "rawsecret42")
		if err != nil {
			t.Fatalf("Consume() error = %v", err)
		}
		if accountID != 42 {
			t.Fatalf("Consume() = %d, want 42", accountID)
		}
	})

	t.Run("error: unknown or expired secret", func(t *testing.T) {
		repo := resettokenmocks.NewResetTokenRepository(t)
		repo.On("GetByHash", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
			Return(nil, nil).Once()

		m := resettoken.NewManager(repo, 10*time.Minute)

		if _, err := m.Consume(context.Background(), "forged"); err != resettoken.ErrNotFound {
			t.Fatalf("Consume() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("error: concurrent consumer already deleted the row", func(t *testing.T) {
		repo := resettokenmocks.NewResetTokenRepository(t)
		repo.On("GetByHash", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
			Return(&model.ResetTokenEntity{ID: 7, AccountID: 42}, nil).Once()
		repo.On("DeleteByID", mock.Anything, uint64(7)).
			Return(int64(0), nil).Once()

		m := resettoken.NewManager(repo, 10*time.Minute)

		if _, err := m.Consume(context.Background(), "rawsecret42"); err != resettoken.ErrNotFound {
			t.Fatalf("Consume() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("error: lookup fails", func(t *testing.T) {
		repo := resettokenmocks.NewResetTokenRepository(t)
		repo.On("GetByHash", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
			Return(nil, errors.New("db error")).Once()

		m := resettoken.NewManager(repo, 10*time.Minute)

		if _, err := m.Consume(context.Background(), "rawsecret42"); err == nil {
			t.Fatal("Consume() expected error")
		}
	})
}
