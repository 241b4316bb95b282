package resettoken

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/nlhsang/chat-account/model"
	resettokenrepo "github.com/nlhsang/chat-account/repository/resettoken"
	"github.com/nlhsang/chat-account/utils/logger"
	"go.uber.org/zap"
)

// ErrNotFound covers every way a presented secret can fail to resolve: never
// issued, already consumed, or expired. Callers must not distinguish these
// cases externally.
var ErrNotFound = errors.New("reset token not found")

const rawSecretBytes = 32

// Manager owns the password-reset token lifecycle: one live token per
// account, 10-minute validity, single use.
type Manager interface {
	// Create replaces any existing token for the account and returns the raw
	// secret. Only a hash of it is persisted; the raw value goes into the
	// emailed link and is never recoverable afterwards.
	Create(ctx context.Context, accountID uint64) (string, error)
	// Consume resolves a raw secret to its owning account and deletes the
	// token, or returns ErrNotFound.
	Consume(ctx context.Context, rawSecret string) (uint64, error)
}

type managerImpl struct {
	repo resettokenrepo.ResetTokenRepository
	ttl  time.Duration
}

func NewManager(repo resettokenrepo.ResetTokenRepository, ttl time.Duration) Manager {
	return &managerImpl{repo: repo, ttl: ttl}
}

func (m *managerImpl) Create(ctx context.Context, accountID uint64) (string, error) {
	if err := m.repo.DeleteByAccount(ctx, accountID); err != nil {
		return "", err
	}

	buf := make([]byte, rawSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	// Raw secret is random hex with the account id concatenated, matching
	// the reset-link format the client expects.
	raw := hex.EncodeToString(buf) + strconv.FormatUint(accountID, 10)

	now := time.Now()
	entity := &model.ResetTokenEntity{
		AccountID: accountID,
		TokenHash: hashSecret(raw),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.repo.Create(ctx, entity); err != nil {
		return "", err
	}

	// Expired rows are unmatchable either way; reaping is housekeeping only.
	if err := m.repo.ReapExpired(ctx, now); err != nil {
		logger.Warn("[ResetToken] reap expired", zap.String("error", err.Error()))
	}

	return raw, nil
}

func (m *managerImpl) Consume(ctx context.Context, rawSecret string) (uint64, error) {
	row, err := m.repo.GetByHash(ctx, hashSecret(rawSecret), time.Now())
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, ErrNotFound
	}

	// The delete is the single-use gate: whoever removes the row wins, a
	// concurrent consumer of the same secret sees zero rows affected.
	affected, err := m.repo.DeleteByID(ctx, row.ID)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrNotFound
	}

	return row.AccountID, nil
}

func hashSecret(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
