package domain

import "time"

type TradingPoint struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	TimeZoneMarker string     `json:"timeZoneMarker"` // IANA 时区标识，例如 Asia/Shanghai
	Address        string     `json:"address"`
	DateDeleted    *time.Time `json:"dateDeleted"`
	CreatedAt      time.Time  `json:"createdAt"`
	Version        int32      `json:"-"`
}
