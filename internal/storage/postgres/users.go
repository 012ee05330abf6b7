package postgres

import (
	"context"
	"errors"

	"github.com/feastline/menu-api/internal/models"
	"github.com/feastline/menu-api/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, username, email, phone_number, hashed_password, role, created_at`

// CreateUser inserts a new user row. An empty phone number is stored as NULL
// so the partial unique index ignores it.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (username, email, phone_number, hashed_password, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns + `;`

	var phone *string
	if user.PhoneNumber != "" {
		phone = &user.PhoneNumber
	}

	row := s.pool.QueryRow(ctx, query, user.Username, user.Email, phone, user.HashedPassword, user.Role)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindUserByID fetches a user by primary key.
func (s *Store) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// FindUserByEmail fetches a user by email address.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// FindUserByUsername fetches a user by username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, username))
}

// UpdateUserRole sets the role and returns the updated record.
func (s *Store) UpdateUserRole(ctx context.Context, id int64, role string) (models.User, error) {
	const query = `UPDATE users SET role = $2 WHERE id = $1 RETURNING ` + userColumns + `;`
	return scanUser(s.pool.QueryRow(ctx, query, id, role))
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	var phone *string
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &phone, &user.HashedPassword, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	if phone != nil {
		user.PhoneNumber = *phone
	}
	return user, nil
}
