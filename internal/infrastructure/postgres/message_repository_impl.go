package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/anon-inbox/internal/domain/entity"
	"github.com/oksasatya/anon-inbox/internal/domain/repository"
)

type MessageRepository struct {
	db *DB
}

func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func (r *MessageRepository) AppendMessage(ctx context.Context, userID, content string, at time.Time) (*entity.Message, error) {
	if !isUUID(userID) {
		return nil, repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}

	m := &entity.Message{}
	err = pool.QueryRow(ctx, `
		INSERT INTO messages (user_id, content, created_at)
		SELECT id, $2, $3 FROM users
		WHERE id = $1 AND is_verified AND is_accepting_messages = true
		RETURNING id, content, created_at
	`, userID, content, at).Scan(&m.ID, &m.Content, &m.CreatedAt)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Nothing inserted: find out why.
	var verified bool
	err = pool.QueryRow(ctx, `SELECT is_verified FROM users WHERE id = $1`, userID).Scan(&verified)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, repository.ErrNotFound
	case err != nil:
		return nil, err
	case !verified:
		return nil, repository.ErrNotFound
	default:
		return nil, repository.ErrNotAccepting
	}
}

func (r *MessageRepository) GetWithMessages(ctx context.Context, userID string) (*entity.User, error) {
	if !isUUID(userID) {
		return nil, repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	u, err := scanUser(pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT id, content, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Message, error) {
		var m entity.Message
		err := row.Scan(&m.ID, &m.Content, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, err
	}
	u.Messages = msgs
	return u, nil
}

func (r *MessageRepository) DeleteMessage(ctx context.Context, userID, messageID string) error {
	if !isUUID(userID) || !isUUID(messageID) {
		return repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	res, err := pool.Exec(ctx, `DELETE FROM messages WHERE id = $1 AND user_id = $2`, messageID, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.MessageRepository = (*MessageRepository)(nil)
