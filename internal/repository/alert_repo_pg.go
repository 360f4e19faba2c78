package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/airbooking-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AlertRepository interface {
	List(ctx context.Context, userID string) ([]domain.Alert, error)
	Create(ctx context.Context, userID string, alert *domain.Alert) error
	// Delete succeeds whether or not the alert exists.
	Delete(ctx context.Context, userID, id string) error
}

type PGAlertRepository struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) AlertRepository {
	return &PGAlertRepository{db: db}
}

func (r *PGAlertRepository) List(ctx context.Context, userID string) ([]domain.Alert, error) {
	rows, err := r.db.Query(ctx, `SELECT id, criteria, email_notifications, created_at FROM alerts WHERE user_id=$1 ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := make([]domain.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *a)
	}
	return alerts, rows.Err()
}

func (r *PGAlertRepository) Create(ctx context.Context, userID string, alert *domain.Alert) error {
	criteria, err := json.Marshal(alert.Criteria)
	if err != nil {
		return fmt.Errorf("encode alert criteria: %w", err)
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO alerts (id, user_id, criteria, email_notifications)
		VALUES ($1, $2, $3::jsonb, $4)
		RETURNING created_at`, string(alert.ID), userID, string(criteria), alert.EmailNotifications)
	if err := row.Scan(&alert.CreatedAt); err != nil {
		return err
	}
	alert.CreatedAt = alert.CreatedAt.UTC()
	return nil
}

func (r *PGAlertRepository) Delete(ctx context.Context, userID, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM alerts WHERE user_id=$1 AND id=$2`, userID, id)
	return err
}

func scanAlert(row pgx.Row) (*domain.Alert, error) {
	var (
		a        domain.Alert
		id       string
		criteria []byte
	)
	if err := row.Scan(&id, &criteria, &a.EmailNotifications, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.ID = domain.ID(id)
	a.CreatedAt = a.CreatedAt.UTC()
	if err := json.Unmarshal(criteria, &a.Criteria); err != nil {
		return nil, fmt.Errorf("decode alert criteria: %w", err)
	}
	return &a, nil
}

var _ AlertRepository = (*PGAlertRepository)(nil)
