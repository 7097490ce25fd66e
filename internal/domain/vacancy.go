package domain

import "time"

type Vacancy struct {
	ID             int64      `json:"id"`
	TradingPointID int64      `json:"tradingPointID"`
	JobTitle       string     `json:"jobTitle"`
	Description    string     `json:"description"`
	CostPerHour    float64    `json:"costPerHour"`
	DateDeleted    *time.Time `json:"dateDeleted"`
	CreatedAt      time.Time  `json:"createdAt"`
	Version        int32      `json:"-"`
}

// Employment 表示某个用户在某个门店的一段雇佣关系，
// 员工的月度排班时间线以 (employment, tradingPoint) 为主体。
type Employment struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"userID"`
	TradingPointID  int64      `json:"tradingPointID"`
	JobTitle        string     `json:"jobTitle"`
	WorkingDateFrom time.Time  `json:"workingDateFrom"`
	WorkingDateTo   *time.Time `json:"workingDateTo"`
	DateDeleted     *time.Time `json:"dateDeleted"`
	CreatedAt       time.Time  `json:"createdAt"`
	Version         int32      `json:"-"`
}
