package domain

import "time"

// WorkingShiftPlan 表示员工时间线上的一条已计划班次。
// DateDeleted 非空表示软删除，历史记录仍然保留。
type WorkingShiftPlan struct {
	ID                      int64      `json:"id"`
	EmploymentID            int64      `json:"employmentID"`
	TradingPointID          int64      `json:"tradingPointID"`
	WorkDateFromUtc         time.Time  `json:"workDateFromUtc"`
	WorkDateToUtc           time.Time  `json:"workDateToUtc"`
	ShiftTypeID             int64      `json:"shiftTypeID"`
	WorklineID              *int64     `json:"worklineID"`
	TimetableTemplateCellID *int64     `json:"timetableTemplateCellID"`
	DateDeleted             *time.Time `json:"dateDeleted"`
	CreatedAt               time.Time  `json:"createdAt"`
	Version                 int32      `json:"-"`
}

// VacancyWorkingShiftPlan 表示挂在招聘空缺上的一条已计划班次。
type VacancyWorkingShiftPlan struct {
	ID                      int64      `json:"id"`
	VacancyID               int64      `json:"vacancyID"`
	WorkDateFromUtc         time.Time  `json:"workDateFromUtc"`
	WorkDateToUtc           time.Time  `json:"workDateToUtc"`
	ShiftTypeID             int64      `json:"shiftTypeID"`
	WorklineID              *int64     `json:"worklineID"`
	TimetableTemplateCellID *int64     `json:"timetableTemplateCellID"`
	DateDeleted             *time.Time `json:"dateDeleted"`
	CreatedAt               time.Time  `json:"createdAt"`
	Version                 int32      `json:"-"`
}
