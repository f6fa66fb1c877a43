package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/anon-inbox/internal/domain/entity"
	"github.com/oksasatya/anon-inbox/internal/domain/repository"
)

const (
	pgUniqueViolation = "23505"

	constraintUsername = "users_username_key"
	constraintEmail    = "users_email_key"
)

const userColumns = `id, name, username, email, password_hash, is_verified, verify_code,
	verify_code_expires, is_accepting_messages, created_at, updated_at`

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Password, &u.IsVerified,
		&u.VerifyCode, &u.VerifyCodeExpires, &u.IsAcceptingMessages, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	return scanUser(pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !isUUID(id) {
		return nil, repository.ErrNotFound
	}
	return r.getOne(ctx, `id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `email = $1`, email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, `username = $1`, username)
}

func (r *UserRepository) GetVerifiedByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, `username = $1 AND is_verified`, username)
}

func (r *UserRepository) UpsertUnverified(ctx context.Context, u *entity.User) error {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		DELETE FROM users
		WHERE username = $1 AND email <> $2 AND NOT is_verified
	`, u.Username, u.Email); err != nil {
		return err
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO users (name, username, email, password_hash, verify_code, verify_code_expires)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name,
		    username = EXCLUDED.username,
		    password_hash = EXCLUDED.password_hash,
		    verify_code = EXCLUDED.verify_code,
		    verify_code_expires = EXCLUDED.verify_code_expires,
		    updated_at = now()
		WHERE users.is_verified = false
		RETURNING id, is_verified, is_accepting_messages, created_at, updated_at
	`, u.Name, u.Username, u.Email, u.Password, u.VerifyCode, u.VerifyCodeExpires)

	if err := row.Scan(&u.ID, &u.IsVerified, &u.IsAcceptingMessages, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// conflict target row is verified
			return repository.ErrEmailTaken
		}
		return mapUniqueViolation(err)
	}
	return tx.Commit(ctx)
}

func (r *UserRepository) MarkVerified(ctx context.Context, id string) error {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
		UPDATE users SET is_verified = true, updated_at = now()
		WHERE id = $1 AND is_verified = false
	`, id)
	return err
}

func (r *UserRepository) GetAcceptingMessages(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return false, err
	}
	var accept bool
	if err := pool.QueryRow(ctx, `SELECT is_accepting_messages FROM users WHERE id = $1`, id).Scan(&accept); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, repository.ErrNotFound
		}
		return false, err
	}
	return accept, nil
}

func (r *UserRepository) SetAcceptingMessages(ctx context.Context, id string, accept bool) (bool, error) {
	if !isUUID(id) {
		return false, repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return false, err
	}
	var stored bool
	err = pool.QueryRow(ctx, `
		UPDATE users SET is_accepting_messages = $2, updated_at = now()
		WHERE id = $1
		RETURNING is_accepting_messages
	`, id, accept).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, repository.ErrNotFound
		}
		return false, err
	}
	return stored, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case constraintUsername:
		return repository.ErrUsernameTaken
	case constraintEmail:
		return repository.ErrEmailTaken
	default:
		return err
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)
