package domain

import "time"

// 模板的应用方式
const (
	ApplyTypeWeekDays  = "week_days"   // 按星期几循环
	ApplyTypeDaysOnOff = "days_on_off" // 按 N 天一轮的大小周循环
)

// week_days 模板中单元格的 dayInfoMnemocode 取值
const (
	DayInfoMonday    = "monday"
	DayInfoTuesday   = "tuesday"
	DayInfoWednesday = "wednesday"
	DayInfoThursday  = "thursday"
	DayInfoFriday    = "friday"
	DayInfoSaturday  = "saturday"
	DayInfoSunday    = "sunday"
)

// days_on_off 模板中单元格的 dayInfoMnemocode 形如 day_1 ... day_N
const DayInfoCyclePrefix = "day_"

// 应用模板时对已有班次冲突的处理策略
const (
	OverlapActionNotSpecified          = "not_specified"
	OverlapActionDeleteAndCreate       = "delete_and_create"
	OverlapActionCreateWithOverlapping = "create_with_overlapping"
)

type TimetableTemplateCell struct {
	ID               int64  `json:"id"`
	TemplateID       int64  `json:"templateID"`
	DayInfoMnemocode string `json:"dayInfoMnemocode"`
	TimeFrom         string `json:"timeFrom"` // 本地时间 HH:MM 或 HH:MM:SS
	DurationMinutes  int32  `json:"durationMinutes"`
	ShiftTypeID      int64  `json:"shiftTypeID"`
	WorklineID       *int64 `json:"worklineID"`
}

type TimetableTemplate struct {
	ID                   int64                   `json:"id"`
	TradingPointID       int64                   `json:"tradingPointID"`
	Name                 string                  `json:"name"`
	ApplyTypeMnemocode   string                  `json:"applyTypeMnemocode"`
	StartingPointDateFix string                  `json:"startingPointDateFix"` // 仅 days_on_off 使用的锚点日期 YYYY-MM-DD
	DaysOnOffLength      *int32                  `json:"daysOnOffLength"`      // 仅 days_on_off 使用，1~7
	Cells                []TimetableTemplateCell `json:"cells"`
	DateDeleted          *time.Time              `json:"dateDeleted"`
	CreatedAt            time.Time               `json:"createdAt"`
	Version              int32                   `json:"-"`
}
