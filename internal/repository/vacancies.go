package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
)

func (r *Repository) GetVacancyByID(id int64) (*domain.Vacancy, error) {
	query := `
		SELECT trading_point_id, job_title, description, cost_per_hour, date_deleted, created_at, version
		FROM vacancies WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	vacancy := &domain.Vacancy{ID: id}
	var dateDeleted sql.NullTime

	dst := []any{&vacancy.TradingPointID, &vacancy.JobTitle, &vacancy.Description, &vacancy.CostPerHour, &dateDeleted, &vacancy.CreatedAt, &vacancy.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if dateDeleted.Valid {
		deleted := dateDeleted.Time
		vacancy.DateDeleted = &deleted
	}

	return vacancy, nil
}

func (r *Repository) CreateVacancy(vacancy *domain.Vacancy) error {
	query := `
		INSERT INTO vacancies (trading_point_id, job_title, description, cost_per_hour)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{vacancy.TradingPointID, vacancy.JobTitle, vacancy.Description, vacancy.CostPerHour}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&vacancy.ID, &vacancy.CreatedAt, &vacancy.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetEmploymentByID(id int64) (*domain.Employment, error) {
	query := `
		SELECT user_id, trading_point_id, job_title, working_date_from, working_date_to, date_deleted, created_at, version
		FROM employments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employment := &domain.Employment{ID: id}
	var workingDateTo, dateDeleted sql.NullTime

	dst := []any{&employment.UserID, &employment.TradingPointID, &employment.JobTitle, &employment.WorkingDateFrom, &workingDateTo, &dateDeleted, &employment.CreatedAt, &employment.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if workingDateTo.Valid {
		to := workingDateTo.Time
		employment.WorkingDateTo = &to
	}
	if dateDeleted.Valid {
		deleted := dateDeleted.Time
		employment.DateDeleted = &deleted
	}

	return employment, nil
}

func (r *Repository) CreateEmployment(employment *domain.Employment) error {
	query := `
		INSERT INTO employments (user_id, trading_point_id, job_title, working_date_from, working_date_to)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{employment.UserID, employment.TradingPointID, employment.JobTitle, employment.WorkingDateFrom, employment.WorkingDateTo}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employment.ID, &employment.CreatedAt, &employment.Version); err != nil {
		return err
	}

	return nil
}
