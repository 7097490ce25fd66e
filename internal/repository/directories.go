package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
)

func (r *Repository) GetShiftTypeByID(id int64) (*domain.ShiftType, error) {
	query := `
		SELECT name, calendar_label_color, is_working_shift, date_deleted, created_at, version
		FROM shift_types WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	st := &domain.ShiftType{ID: id}
	var dateDeleted sql.NullTime

	dst := []any{&st.Name, &st.CalendarLabelColor, &st.IsWorkingShift, &dateDeleted, &st.CreatedAt, &st.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if dateDeleted.Valid {
		deleted := dateDeleted.Time
		st.DateDeleted = &deleted
	}

	return st, nil
}

func (r *Repository) CreateShiftType(st *domain.ShiftType) error {
	query := `
		INSERT INTO shift_types (name, calendar_label_color, is_working_shift)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, st.Name, st.CalendarLabelColor, st.IsWorkingShift).Scan(&st.ID, &st.CreatedAt, &st.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetWorklineByID(id int64) (*domain.Workline, error) {
	query := `
		SELECT name, is_overlap_acceptable, date_deleted, created_at, version
		FROM worklines WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	wl := &domain.Workline{ID: id}
	var dateDeleted sql.NullTime

	dst := []any{&wl.Name, &wl.IsOverlapAcceptable, &dateDeleted, &wl.CreatedAt, &wl.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if dateDeleted.Valid {
		deleted := dateDeleted.Time
		wl.DateDeleted = &deleted
	}

	return wl, nil
}

func (r *Repository) CreateWorkline(wl *domain.Workline) error {
	query := `
		INSERT INTO worklines (name, is_overlap_acceptable)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, wl.Name, wl.IsOverlapAcceptable).Scan(&wl.ID, &wl.CreatedAt, &wl.Version); err != nil {
		return err
	}

	return nil
}

// GetWorklineAcceptabilityMap 返回未删除工作线的 id -> isOverlapAcceptable 映射，
// 冲突分类时用来判断候选班次一侧的可重叠性。
func (r *Repository) GetWorklineAcceptabilityMap() (map[int64]bool, error) {
	query := `
		SELECT id, is_overlap_acceptable FROM worklines WHERE date_deleted IS NULL
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	acceptable := make(map[int64]bool)
	for rows.Next() {
		var id int64
		var isAcceptable bool
		if err := rows.Scan(&id, &isAcceptable); err != nil {
			return nil, err
		}
		acceptable[id] = isAcceptable
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return acceptable, nil
}
