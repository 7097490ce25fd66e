package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
	"github.com/paiban-dev/workforce-manager/backend/internal/shiftgen"
)

// 咨询锁的高 32 位区分主体类型，低 32 位放主体 ID。
// 同一主体上的两次模板应用会在这里串行化，弥补读已提交隔离级别下的竞态。
const (
	vacancyPlanLockClass int64 = 1
	workingPlanLockClass int64 = 2
)

func advisoryLockKey(class int64, subjectID int64) int64 {
	return class<<32 | (subjectID & 0xffffffff)
}

// ReconcileResult 是一次落库的回执。
type ReconcileResult struct {
	InsertedIDs    []int64 `json:"insertedIDs"`
	SoftDeletedIDs []int64 `json:"softDeletedIDs"`
}

// GetExistingVacancyShiftPlans 取出某个空缺名下全部未删除的班次，
// 连同工作线的可重叠标志，映射成分类器需要的形状。
func (r *Repository) GetExistingVacancyShiftPlans(vacancyID int64) ([]shiftgen.Existing, error) {
	query := `
		SELECT p.id, p.work_date_from_utc, p.work_date_to_utc, p.workline_id, w.is_overlap_acceptable
		FROM vacancy_working_shift_plans p
		LEFT JOIN worklines w ON p.workline_id = w.id
		WHERE p.vacancy_id = $1 AND p.date_deleted IS NULL
		ORDER BY p.work_date_from_utc
	`

	return r.queryExistingShiftPlans(query, vacancyID)
}

// GetExistingWorkingShiftPlans 取出某段雇佣关系名下全部未删除的班次。
func (r *Repository) GetExistingWorkingShiftPlans(employmentID int64) ([]shiftgen.Existing, error) {
	query := `
		SELECT p.id, p.work_date_from_utc, p.work_date_to_utc, p.workline_id, w.is_overlap_acceptable
		FROM working_shift_plans p
		LEFT JOIN worklines w ON p.workline_id = w.id
		WHERE p.employment_id = $1 AND p.date_deleted IS NULL
		ORDER BY p.work_date_from_utc
	`

	return r.queryExistingShiftPlans(query, employmentID)
}

func (r *Repository) queryExistingShiftPlans(query string, subjectID int64) ([]shiftgen.Existing, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make([]shiftgen.Existing, 0)
	for rows.Next() {
		var ex shiftgen.Existing
		var worklineID sql.NullInt64
		var acceptable sql.NullBool

		if err := rows.Scan(&ex.ID, &ex.WorkDateFromUtc, &ex.WorkDateToUtc, &worklineID, &acceptable); err != nil {
			return nil, err
		}
		if worklineID.Valid {
			id := worklineID.Int64
			ex.WorklineID = &id
		}
		if acceptable.Valid {
			flag := acceptable.Bool
			ex.IsOverlapAcceptable = &flag
		}
		existing = append(existing, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return existing, nil
}

// GetVacancyShiftPlans 返回某个空缺名下全部未删除的班次，按开始时刻升序。
func (r *Repository) GetVacancyShiftPlans(vacancyID int64) ([]*domain.VacancyWorkingShiftPlan, error) {
	query := `
		SELECT id, work_date_from_utc, work_date_to_utc, shift_type_id, workline_id, timetable_template_cell_id, created_at, version
		FROM vacancy_working_shift_plans
		WHERE vacancy_id = $1 AND date_deleted IS NULL
		ORDER BY work_date_from_utc
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, vacancyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]*domain.VacancyWorkingShiftPlan, 0)
	for rows.Next() {
		plan := &domain.VacancyWorkingShiftPlan{VacancyID: vacancyID}
		var worklineID, cellID sql.NullInt64

		dst := []any{&plan.ID, &plan.WorkDateFromUtc, &plan.WorkDateToUtc, &plan.ShiftTypeID, &worklineID, &cellID, &plan.CreatedAt, &plan.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if worklineID.Valid {
			id := worklineID.Int64
			plan.WorklineID = &id
		}
		if cellID.Valid {
			id := cellID.Int64
			plan.TimetableTemplateCellID = &id
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// GetWorkingShiftPlans 返回某段雇佣关系名下全部未删除的班次，按开始时刻升序。
func (r *Repository) GetWorkingShiftPlans(employmentID int64) ([]*domain.WorkingShiftPlan, error) {
	query := `
		SELECT id, trading_point_id, work_date_from_utc, work_date_to_utc, shift_type_id, workline_id, timetable_template_cell_id, created_at, version
		FROM working_shift_plans
		WHERE employment_id = $1 AND date_deleted IS NULL
		ORDER BY work_date_from_utc
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]*domain.WorkingShiftPlan, 0)
	for rows.Next() {
		plan := &domain.WorkingShiftPlan{EmploymentID: employmentID}
		var worklineID, cellID sql.NullInt64

		dst := []any{&plan.ID, &plan.TradingPointID, &plan.WorkDateFromUtc, &plan.WorkDateToUtc, &plan.ShiftTypeID, &worklineID, &cellID, &plan.CreatedAt, &plan.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if worklineID.Valid {
			id := worklineID.Int64
			plan.WorklineID = &id
		}
		if cellID.Valid {
			id := cellID.Int64
			plan.TimetableTemplateCellID = &id
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// ReconcileVacancyShiftPlans 在单个事务里执行落库计划：
// 先按主体拿事务级咨询锁，然后软删除被牵连的班次、插入全部候选，
// 每一次行级变更写一条事件历史。任何一步出错整个事务回滚。
func (r *Repository) ReconcileVacancyShiftPlans(vacancyID int64, plan *shiftgen.ActionPlan, methodName string) (*ReconcileResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockKey(vacancyPlanLockClass, vacancyID)); err != nil {
		return nil, err
	}

	result := &ReconcileResult{InsertedIDs: []int64{}, SoftDeletedIDs: []int64{}}

	for _, id := range plan.SoftDeleteIDs {
		query := `
			UPDATE vacancy_working_shift_plans
			SET date_deleted = now(), version = version + 1
			WHERE id = $1 AND date_deleted IS NULL
			RETURNING date_deleted
		`
		var dateDeleted time.Time
		if err := tx.QueryRowContext(ctx, query, id).Scan(&dateDeleted); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// 已经被软删除过，跳过
				continue
			}
			return nil, err
		}

		editBody, err := marshalEditBody(map[string]domain.FieldChange{
			"dateDeleted": {Old: nil, New: dateDeleted},
		})
		if err != nil {
			return nil, err
		}
		ev := &domain.EventHistory{
			TableMnemocode:    "vacancy_working_shift_plan",
			SubjectID:         id,
			MethodName:        methodName,
			IsNewRecord:       false,
			PlatformMnemocode: domain.PlatformMnemocodeWeb,
			EditBody:          editBody,
			DateUtc:           nowUtc(),
		}
		if err := insertEventHistory(ctx, tx, ev); err != nil {
			return nil, err
		}

		result.SoftDeletedIDs = append(result.SoftDeletedIDs, id)
	}

	for _, cand := range plan.Inserts {
		query := `
			INSERT INTO vacancy_working_shift_plans (vacancy_id, work_date_from_utc, work_date_to_utc, shift_type_id, workline_id, timetable_template_cell_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		var id int64
		args := []any{vacancyID, cand.WorkDateFromUtc, cand.WorkDateToUtc, cand.ShiftTypeID, cand.WorklineID, cand.OriginCellID}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return nil, err
		}

		editBody, err := marshalEditBody(map[string]domain.FieldChange{
			"vacancyID":       {Old: nil, New: vacancyID},
			"workDateFromUtc": {Old: nil, New: cand.WorkDateFromUtc},
			"workDateToUtc":   {Old: nil, New: cand.WorkDateToUtc},
			"shiftTypeID":     {Old: nil, New: cand.ShiftTypeID},
			"worklineID":      {Old: nil, New: cand.WorklineID},
		})
		if err != nil {
			return nil, err
		}
		ev := &domain.EventHistory{
			TableMnemocode:    "vacancy_working_shift_plan",
			SubjectID:         id,
			MethodName:        methodName,
			IsNewRecord:       true,
			PlatformMnemocode: domain.PlatformMnemocodeWeb,
			EditBody:          editBody,
			DateUtc:           nowUtc(),
		}
		if err := insertEventHistory(ctx, tx, ev); err != nil {
			return nil, err
		}

		result.InsertedIDs = append(result.InsertedIDs, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return result, nil
}

// ReconcileWorkingShiftPlans 与空缺侧的落库逻辑相同，只是主体换成雇佣关系。
func (r *Repository) ReconcileWorkingShiftPlans(employmentID int64, tradingPointID int64, plan *shiftgen.ActionPlan, methodName string) (*ReconcileResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockKey(workingPlanLockClass, employmentID)); err != nil {
		return nil, err
	}

	result := &ReconcileResult{InsertedIDs: []int64{}, SoftDeletedIDs: []int64{}}

	for _, id := range plan.SoftDeleteIDs {
		query := `
			UPDATE working_shift_plans
			SET date_deleted = now(), version = version + 1
			WHERE id = $1 AND date_deleted IS NULL
			RETURNING date_deleted
		`
		var dateDeleted time.Time
		if err := tx.QueryRowContext(ctx, query, id).Scan(&dateDeleted); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}

		editBody, err := marshalEditBody(map[string]domain.FieldChange{
			"dateDeleted": {Old: nil, New: dateDeleted},
		})
		if err != nil {
			return nil, err
		}
		ev := &domain.EventHistory{
			TableMnemocode:    "working_shift_plan",
			SubjectID:         id,
			MethodName:        methodName,
			IsNewRecord:       false,
			PlatformMnemocode: domain.PlatformMnemocodeWeb,
			EditBody:          editBody,
			DateUtc:           nowUtc(),
		}
		if err := insertEventHistory(ctx, tx, ev); err != nil {
			return nil, err
		}

		result.SoftDeletedIDs = append(result.SoftDeletedIDs, id)
	}

	for _, cand := range plan.Inserts {
		query := `
			INSERT INTO working_shift_plans (employment_id, trading_point_id, work_date_from_utc, work_date_to_utc, shift_type_id, workline_id, timetable_template_cell_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		var id int64
		args := []any{employmentID, tradingPointID, cand.WorkDateFromUtc, cand.WorkDateToUtc, cand.ShiftTypeID, cand.WorklineID, cand.OriginCellID}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return nil, err
		}

		editBody, err := marshalEditBody(map[string]domain.FieldChange{
			"employmentID":    {Old: nil, New: employmentID},
			"tradingPointID":  {Old: nil, New: tradingPointID},
			"workDateFromUtc": {Old: nil, New: cand.WorkDateFromUtc},
			"workDateToUtc":   {Old: nil, New: cand.WorkDateToUtc},
			"shiftTypeID":     {Old: nil, New: cand.ShiftTypeID},
			"worklineID":      {Old: nil, New: cand.WorklineID},
		})
		if err != nil {
			return nil, err
		}
		ev := &domain.EventHistory{
			TableMnemocode:    "working_shift_plan",
			SubjectID:         id,
			MethodName:        methodName,
			IsNewRecord:       true,
			PlatformMnemocode: domain.PlatformMnemocodeWeb,
			EditBody:          editBody,
			DateUtc:           nowUtc(),
		}
		if err := insertEventHistory(ctx, tx, ev); err != nil {
			return nil, err
		}

		result.InsertedIDs = append(result.InsertedIDs, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return result, nil
}
