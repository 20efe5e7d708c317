package repository

import (
	"context"
	"errors"

	"workhub/internal/database"
	"workhub/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserDirectory is the read-only collaborator surface the discovery core
// uses to decorate listings. Account management lives elsewhere.
type UserDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (user.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.Summary, error)
}

type PostgresUserDirectory struct {
	db database.DB
}

func NewPostgresUserDirectory(db database.DB) *PostgresUserDirectory {
	return &PostgresUserDirectory{db: db}
}

func (r *PostgresUserDirectory) FindByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, email, phone, role, created_at, updated_at FROM users WHERE id = $1`,
		id,
	)

	var u user.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}

func (r *PostgresUserDirectory) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.Summary, error) {
	out := make(map[uuid.UUID]user.Summary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, phone FROM users WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s user.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone); err != nil {
			return nil, err
		}
		out[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
