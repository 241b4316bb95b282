package resettoken

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nlhsang/chat-account/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ResetTokenRepository interface {
	Create(ctx context.Context, req *model.ResetTokenEntity) error
	DeleteByAccount(ctx context.Context, accountID uint64) error
	// GetByHash returns the row for hash with expires_at after now, or nil.
	GetByHash(ctx context.Context, hash string, now time.Time) (*model.ResetTokenEntity, error)
	// DeleteByID reports how many rows were removed so a lost race shows up
	// as zero.
	DeleteByID(ctx context.Context, id uint64) (int64, error)
	// ReapExpired removes rows that can no longer match. Expiry is enforced
	// at lookup time; this only keeps the table small.
	ReapExpired(ctx context.Context, now time.Time) error
}

func NewResetTokenRepository(conn *sqlx.DB) ResetTokenRepository {
	return &SQL{conn: conn}
}

const (
	insertTokenQuery    = `INSERT INTO reset_token (account_id, token_hash, created_at, expires_at) VALUES (?, ?, ?, ?)`
	deleteByAccountQry  = `DELETE FROM reset_token WHERE account_id = ?`
	getByHashQuery      = `SELECT id, account_id, token_hash, created_at, expires_at FROM reset_token WHERE token_hash = ? AND expires_at > ?`
	deleteByIDQuery     = `DELETE FROM reset_token WHERE id = ?`
	reapExpiredTokenQry = `DELETE FROM reset_token WHERE expires_at <= ?`
)

func (s *SQL) Create(ctx context.Context, data *model.ResetTokenEntity) error {
	_, err := s.conn.ExecContext(ctx, insertTokenQuery,
		data.AccountID, data.TokenHash, data.CreatedAt, data.ExpiresAt)
	return err
}

func (s *SQL) DeleteByAccount(ctx context.Context, accountID uint64) error {
	_, err := s.conn.ExecContext(ctx, deleteByAccountQry, accountID)
	return err
}

func (s *SQL) GetByHash(ctx context.Context, hash string, now time.Time) (*model.ResetTokenEntity, error) {
	var entity model.ResetTokenEntity
	if err := s.conn.QueryRowxContext(ctx, getByHashQuery, hash, now).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) DeleteByID(ctx context.Context, id uint64) (int64, error) {
	result, err := s.conn.ExecContext(ctx, deleteByIDQuery, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *SQL) ReapExpired(ctx context.Context, now time.Time) error {
	_, err := s.conn.ExecContext(ctx, reapExpiredTokenQry, now)
	return err
}
