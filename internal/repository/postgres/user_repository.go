package postgres

import (
	"context"
	"database/sql"
	goerrors "errors"

	"github.com/jmoiron/sqlx"
	"github.com/railconnect/internal/domain"
	"github.com/railconnect/internal/domain/repository"
	"github.com/railconnect/internal/pkg/errors"
	"go.uber.org/zap"
)

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.Password).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.ErrDuplicateKey.WithMessage("Username %q already exists", user.Username)
		}
		r.logger.Error("Failed to create user", zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`SELECT id, username, email, password FROM users WHERE id = $1`, id)
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound.WithMessage("User %d not found", id)
	}
	if err != nil {
		r.logger.Error("Failed to get user by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`SELECT id, username, email, password FROM users WHERE username = $1`, username)
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound.WithMessage("User %q not found", username)
	}
	if err != nil {
		r.logger.Error("Failed to get user by username", zap.String("username", username), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return &user, nil
}

func (r *userRepository) List(ctx context.Context, q string) ([]*domain.User, error) {
	query := `
		SELECT id, username, email, password
		FROM users
		WHERE $1 = '' OR username ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		ORDER BY id
	`

	var users []*domain.User
	if err := r.db.SelectContext(ctx, &users, query, q); err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET email = $1, password = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, user.Email, user.Password, user.ID)
	if err != nil {
		r.logger.Error("Failed to update user", zap.Int64("id", user.ID), zap.Error(err))
		return errors.ErrStorageError
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return errors.ErrNotFound.WithMessage("User %d not found", user.ID)
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete user", zap.Int64("id", id), zap.Error(err))
		return errors.ErrStorageError
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return errors.ErrNotFound.WithMessage("User %d not found", id)
	}

	return nil
}
