package repository

import (
	"context"
	"errors"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// List returns all users, stable by id.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, color, avatar_base64 FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

// Get returns one user by id.
func (r *UserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	var (
		u      domain.User
		color  *string
		avatar *string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, name, color, avatar_base64 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &color, &avatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if color != nil {
		u.Color = *color
	}
	if avatar != nil {
		u.AvatarBase64 = *avatar
	}
	return &u, nil
}

// Create inserts a user and fills in its id.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	var color, avatar any
	if u.Color != "" {
		color = u.Color
	}
	if u.AvatarBase64 != "" {
		avatar = u.AvatarBase64
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO users (name, color, avatar_base64) VALUES ($1, $2, $3) RETURNING id`,
		u.Name, color, avatar,
	).Scan(&u.ID)
}

// UpdateColor sets the user's display color.
func (r *UserRepository) UpdateColor(ctx context.Context, id int64, color string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET color = $1 WHERE id = $2`, color, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateImage sets the user's avatar, stored base64-encoded.
func (r *UserRepository) UpdateImage(ctx context.Context, id int64, imageBase64 string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET avatar_base64 = $1 WHERE id = $2`, imageBase64, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(rows pgx.Rows) (domain.User, error) {
	var (
		u      domain.User
		color  *string
		avatar *string
	)
	if err := rows.Scan(&u.ID, &u.Name, &color, &avatar); err != nil {
		return u, err
	}
	if color != nil {
		u.Color = *color
	}
	if avatar != nil {
		u.AvatarBase64 = *avatar
	}
	return u, nil
}
