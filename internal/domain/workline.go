package domain

import "time"

// Workline 表示一条工作线（收银、理货等）。
// IsOverlapAcceptable 决定两个时间上相交的班次是否允许共存。
type Workline struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	IsOverlapAcceptable bool       `json:"isOverlapAcceptable"`
	DateDeleted         *time.Time `json:"dateDeleted"`
	CreatedAt           time.Time  `json:"createdAt"`
	Version             int32      `json:"-"`
}
