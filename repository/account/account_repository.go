package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/nlhsang/chat-account/model"
)

// ErrDuplicateEntry is returned when an insert or update trips the unique
// index on email or phone. The index, not the application-level pre-check, is
// the uniqueness guarantee under concurrent requests.
var ErrDuplicateEntry = errors.New("email or phone already registered")

const mysqlDuplicateEntry = 1062

type SQL struct {
	conn *sqlx.DB
}

type AccountRepository interface {
	Create(ctx context.Context, req *model.AccountEntity) (*model.AccountEntity, error)
	Get(ctx context.Context, filter *model.AccountFilter) (*model.AccountEntity, error)
	List(ctx context.Context) ([]model.AccountEntity, error)
	UpdateProfile(ctx context.Context, id uint64, req *model.UpdateProfileRequest) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
}

func NewAccountRepository(conn *sqlx.DB) AccountRepository {
	return &SQL{conn: conn}
}

const (
	insertAccountQuery = `INSERT INTO account (name, email, phone, password_hash, photo, bio, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	getAccountBase     = `SELECT id, name, email, phone, password_hash, photo, bio, created_at, updated_at FROM account WHERE true`
	listAccountsQuery  = `SELECT id, name, email, phone, password_hash, photo, bio, created_at, updated_at FROM account ORDER BY id`
	updatePasswordQry  = `UPDATE account SET password_hash = ?, updated_at = NOW() WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.AccountEntity) (*model.AccountEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertAccountQuery,
		data.Name, data.Email, data.Phone, data.PasswordHash, data.Photo, data.Bio, data.CreatedAt)
	if err != nil {
		return nil, mapDuplicate(err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

func (s *SQL) Get(ctx context.Context, filter *model.AccountFilter) (*model.AccountEntity, error) {
	query := getAccountBase
	args := make([]any, 0, 4)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.MatchAny && filter.Email != "" && filter.Phone != "" {
		query += " AND (email = ? OR phone = ?)"
		args = append(args, filter.Email, filter.Phone)
	} else {
		if filter.Email != "" {
			query += " AND email = ?"
			args = append(args, filter.Email)
		}
		if filter.Phone != "" {
			query += " AND phone = ?"
			args = append(args, filter.Phone)
		}
	}
	if filter.ExcludeID != 0 {
		query += " AND id != ?"
		args = append(args, filter.ExcludeID)
	}

	var entity model.AccountEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context) ([]model.AccountEntity, error) {
	var accounts []model.AccountEntity
	if err := s.conn.SelectContext(ctx, &accounts, listAccountsQuery); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *SQL) UpdateProfile(ctx context.Context, id uint64, req *model.UpdateProfileRequest) error {
	query := "UPDATE account SET email = ?, phone = ?, updated_at = NOW()"
	args := []any{req.Email, req.Phone}

	if req.Name != "" {
		query += ", name = ?"
		args = append(args, req.Name)
	}
	if req.Photo != "" {
		query += ", photo = ?"
		args = append(args, req.Photo)
	}
	if req.Bio != "" {
		query += ", bio = ?"
		args = append(args, req.Bio)
	}

	query += " WHERE id = ?"
	args = append(args, id)

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return mapDuplicate(err)
	}
	return nil
}

func (s *SQL) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	_, err := s.conn.ExecContext(ctx, updatePasswordQry, passwordHash, id)
	return err
}

func mapDuplicate(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return ErrDuplicateEntry
	}
	return err
}
