package repository

import (
	"context"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error)
	UpdateImage(ctx context.Context, id uuid.UUID, imageURL string) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, image_url, created_at`

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.QueryRow(ctx, `INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`, user.ID, user.Name, user.Email, user.PasswordHash, user.Role).
		Scan(&user.CreatedAt); err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *PGUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	return scanUser(row)
}

func (r *PGUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `UPDATE users SET role=$1 WHERE id=$2 RETURNING `+userColumns, role, id)
	return scanUser(row)
}

func (r *PGUserRepository) UpdateImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET image_url=$1 WHERE id=$2`, imageURL, id)
	if err != nil {
		return storeErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.ImageURL, &u.CreatedAt); err != nil {
		return nil, storeErr(err)
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
