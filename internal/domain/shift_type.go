package domain

import "time"

type ShiftType struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	CalendarLabelColor string     `json:"calendarLabelColor"`
	IsWorkingShift     bool       `json:"isWorkingShift"`
	DateDeleted        *time.Time `json:"dateDeleted"`
	CreatedAt          time.Time  `json:"createdAt"`
	Version            int32      `json:"-"`
}
