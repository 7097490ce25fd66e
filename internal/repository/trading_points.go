package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
)

func (r *Repository) GetTradingPointByID(id int64) (*domain.TradingPoint, error) {
	query := `
		SELECT name, time_zone_marker, address, date_deleted, created_at, version
		FROM trading_points WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	tp := &domain.TradingPoint{ID: id}
	var dateDeleted sql.NullTime

	dst := []any{&tp.Name, &tp.TimeZoneMarker, &tp.Address, &dateDeleted, &tp.CreatedAt, &tp.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if dateDeleted.Valid {
		deleted := dateDeleted.Time
		tp.DateDeleted = &deleted
	}

	return tp, nil
}

func (r *Repository) GetAllTradingPoints() ([]*domain.TradingPoint, error) {
	query := `
		SELECT id, name, time_zone_marker, address, created_at, version
		FROM trading_points WHERE date_deleted IS NULL ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]*domain.TradingPoint, 0)
	for rows.Next() {
		tp := &domain.TradingPoint{}
		dst := []any{&tp.ID, &tp.Name, &tp.TimeZoneMarker, &tp.Address, &tp.CreatedAt, &tp.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		points = append(points, tp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

func (r *Repository) CreateTradingPoint(tp *domain.TradingPoint) error {
	query := `
		INSERT INTO trading_points (name, time_zone_marker, address)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, tp.Name, tp.TimeZoneMarker, tp.Address).Scan(&tp.ID, &tp.CreatedAt, &tp.Version); err != nil {
		return err
	}

	return nil
}
