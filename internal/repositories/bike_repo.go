package repositories

import (
	"context"

	"motocase/internal/models"

	"github.com/google/uuid"
)

type BikeRepository interface {
	Create(ctx context.Context, bike *models.Bike) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bike, error)
	Update(ctx context.Context, bike *models.Bike) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, workspaceID *uuid.UUID, limit, offset int) ([]*models.Bike, error)
}

type bikeRepo struct {
	db DB
}

func NewBikeRepo(db DB) BikeRepository {
	return &bikeRepo{db: db}
}

func (r *bikeRepo) Create(ctx context.Context, bike *models.Bike) error {
	query := `
		INSERT INTO bikes (id, workspace_id, plate, model, vin, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, bike.ID, bike.WorkspaceID, bike.Plate, bike.Model, bike.VIN, bike.Status)
	return err
}

func (r *bikeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Bike, error) {
	bike := &models.Bike{}
	query := `
		SELECT id, workspace_id, plate, model, vin, status, created_at, updated_at
		FROM bikes
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&bike.ID, &bike.WorkspaceID, &bike.Plate,
		&bike.Model, &bike.VIN, &bike.Status, &bike.CreatedAt, &bike.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return bike, nil
}

func (r *bikeRepo) Update(ctx context.Context, bike *models.Bike) error {
	query := `
		UPDATE bikes
		SET workspace_id = $1, plate = $2, model = $3, vin = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, bike.WorkspaceID, bike.Plate, bike.Model, bike.VIN, bike.Status, bike.ID)
	return err
}

func (r *bikeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bikes WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *bikeRepo) List(ctx context.Context, workspaceID *uuid.UUID, limit, offset int) ([]*models.Bike, error) {
	query := `
		SELECT id, workspace_id, plate, model, vin, status, created_at, updated_at
		FROM bikes
		WHERE ($1::uuid IS NULL OR workspace_id = $1 OR workspace_id IS NULL)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, workspaceID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bikes []*models.Bike
	for rows.Next() {
		bike := &models.Bike{}
		if err := rows.Scan(&bike.ID, &bike.WorkspaceID, &bike.Plate, &bike.Model,
			&bike.VIN, &bike.Status, &bike.CreatedAt, &bike.UpdatedAt); err != nil {
			return nil, err
		}
		bikes = append(bikes, bike)
	}
	return bikes, rows.Err()
}
