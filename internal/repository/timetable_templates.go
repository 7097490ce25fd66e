package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
)

func (r *Repository) GetTimetableTemplate(id int64) (*domain.TimetableTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			tt.trading_point_id,
			tt.name,
			tt.apply_type_mnemocode,
			tt.starting_point_date_fix,
			tt.days_on_off_length,
			tt.date_deleted,
			tt.created_at,
			tt.version,
			ttc.id,
			ttc.day_info_mnemocode,
			ttc.time_from,
			ttc.duration_minutes,
			ttc.shift_type_id,
			ttc.workline_id
		FROM timetable_templates tt
		LEFT JOIN timetable_template_cells ttc ON tt.id = ttc.template_id
		WHERE tt.id = $1
		ORDER BY ttc.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	template := &domain.TimetableTemplate{ID: id}
	found := false

	for rows.Next() {
		var row struct {
			TradingPointID       int64
			Name                 string
			ApplyTypeMnemocode   string
			StartingPointDateFix sql.NullString
			DaysOnOffLength      sql.NullInt32
			DateDeleted          sql.NullTime
			CreatedAt            time.Time
			Version              int32

			CellID           sql.NullInt64
			DayInfoMnemocode sql.NullString
			TimeFrom         sql.NullString
			DurationMinutes  sql.NullInt32
			ShiftTypeID      sql.NullInt64
			WorklineID       sql.NullInt64
		}

		dst := []any{
			&row.TradingPointID,
			&row.Name,
			&row.ApplyTypeMnemocode,
			&row.StartingPointDateFix,
			&row.DaysOnOffLength,
			&row.DateDeleted,
			&row.CreatedAt,
			&row.Version,
			&row.CellID,
			&row.DayInfoMnemocode,
			&row.TimeFrom,
			&row.DurationMinutes,
			&row.ShiftTypeID,
			&row.WorklineID,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !found {
			// 第一次查到这个模板，填充模板本身的字段
			found = true
			template.TradingPointID = row.TradingPointID
			template.Name = row.Name
			template.ApplyTypeMnemocode = row.ApplyTypeMnemocode
			template.StartingPointDateFix = row.StartingPointDateFix.String
			template.CreatedAt = row.CreatedAt
			template.Version = row.Version
			if row.DaysOnOffLength.Valid {
				length := row.DaysOnOffLength.Int32
				template.DaysOnOffLength = &length
			}
			if row.DateDeleted.Valid {
				deleted := row.DateDeleted.Time
				template.DateDeleted = &deleted
			}
		}

		if !row.CellID.Valid {
			// 说明该模板还没有任何单元格
			continue
		}

		cell := domain.TimetableTemplateCell{
			ID:               row.CellID.Int64,
			TemplateID:       id,
			DayInfoMnemocode: row.DayInfoMnemocode.String,
			TimeFrom:         row.TimeFrom.String,
			DurationMinutes:  row.DurationMinutes.Int32,
			ShiftTypeID:      row.ShiftTypeID.Int64,
		}
		if row.WorklineID.Valid {
			worklineID := row.WorklineID.Int64
			cell.WorklineID = &worklineID
		}
		template.Cells = append(template.Cells, cell)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return template, nil
}

func (r *Repository) GetTimetableTemplatesByTradingPoint(tradingPointID int64) ([]*domain.TimetableTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, name, apply_type_mnemocode, starting_point_date_fix, days_on_off_length, created_at, version
		FROM timetable_templates
		WHERE trading_point_id = $1 AND date_deleted IS NULL
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, tradingPointID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*domain.TimetableTemplate, 0)
	for rows.Next() {
		template := &domain.TimetableTemplate{TradingPointID: tradingPointID}
		var startingPoint sql.NullString
		var length sql.NullInt32

		dst := []any{&template.ID, &template.Name, &template.ApplyTypeMnemocode, &startingPoint, &length, &template.CreatedAt, &template.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		template.StartingPointDateFix = startingPoint.String
		if length.Valid {
			l := length.Int32
			template.DaysOnOffLength = &l
		}
		templates = append(templates, template)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *Repository) CreateTimetableTemplate(template *domain.TimetableTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO timetable_templates (trading_point_id, name, apply_type_mnemocode, starting_point_date_fix, days_on_off_length)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		RETURNING id, created_at, version
	`

	args := []any{template.TradingPointID, template.Name, template.ApplyTypeMnemocode, template.StartingPointDateFix, template.DaysOnOffLength}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&template.ID, &template.CreatedAt, &template.Version); err != nil {
		return err
	}

	for i := range template.Cells {
		query = `
			INSERT INTO timetable_template_cells (template_id, day_info_mnemocode, time_from, duration_minutes, shift_type_id, workline_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		cell := &template.Cells[i]
		args := []any{template.ID, cell.DayInfoMnemocode, cell.TimeFrom, cell.DurationMinutes, cell.ShiftTypeID, cell.WorklineID}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&cell.ID); err != nil {
			return err
		}
		cell.TemplateID = template.ID
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateTimetableTemplateName(template *domain.TimetableTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE timetable_templates
		SET name = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, template.Name, template.ID, template.Version).Scan(&template.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) SoftDeleteTimetableTemplate(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE timetable_templates
		SET date_deleted = now(), version = version + 1
		WHERE id = $1 AND date_deleted IS NULL
	`

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
