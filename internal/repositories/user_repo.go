package repositories

import (
	"context"
	"fmt"

	"motocase/internal/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, firstLogin bool) error
	RecordLogin(ctx context.Context, id uuid.UUID) error
	CompleteOnboarding(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, workspaceID *uuid.UUID, limit, offset int) ([]*models.User, error)
	ListStaleFirstLogin(ctx context.Context, olderThanDays int) ([]*models.User, error)
}

type userRepo struct {
	db DB
}

func NewUserRepo(db DB) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, password_hash, role, workspace_id, status, first_login, onboarding_completed, last_login_at, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.WorkspaceID,
		&user.Status, &user.FirstLogin, &user.OnboardingCompleted, &user.LastLoginAt,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	// Email must be unique across non-deleted accounts, case-insensitively.
	var count int
	emailCheckQuery := `SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER($1) AND status != 'deleted'`
	err := r.db.QueryRow(ctx, emailCheckQuery, user.Email).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("user with email '%s' already exists", user.Email)
	}

	query := `
		INSERT INTO users (id, email, password_hash, role, workspace_id, status, first_login, onboarding_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, user.ID, user.Email, user.PasswordHash, user.Role,
		user.WorkspaceID, user.Status, user.FirstLogin, user.OnboardingCompleted)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1) AND status != 'deleted'`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET role = $1, workspace_id = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, user.Role, user.WorkspaceID, user.Status, user.ID)
	return err
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, firstLogin bool) error {
	query := `
		UPDATE users
		SET password_hash = $1, first_login = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, passwordHash, firstLogin, id)
	return err
}

func (r *userRepo) RecordLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *userRepo) CompleteOnboarding(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET onboarding_completed = TRUE, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// SoftDelete marks the account deleted. User rows are never physically
// removed.
func (r *userRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET status = 'deleted', updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *userRepo) List(ctx context.Context, workspaceID *uuid.UUID, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE status != 'deleted' AND ($1::uuid IS NULL OR workspace_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, workspaceID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepo) ListStaleFirstLogin(ctx context.Context, olderThanDays int) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE status = 'active' AND first_login = TRUE
		  AND created_at < NOW() - ($1 * INTERVAL '1 day')
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, olderThanDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
