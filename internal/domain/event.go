package domain

import (
	"encoding/json"
	"time"
)

// 写入事件历史时使用的平台助记码
const (
	PlatformMnemocodeWeb = "web"
)

// EventHistory 是一条审计记录，每一次行级变更对应一条。
// EditBody 只包含发生变化的列的旧值和新值。
type EventHistory struct {
	ID                int64           `json:"id"`
	TableMnemocode    string          `json:"tableMnemocode"`
	SubjectID         int64           `json:"subjectID"`
	MethodName        string          `json:"methodName"`
	IsNewRecord       bool            `json:"isNewRecord"`
	PlatformMnemocode string          `json:"platformMnemocode"`
	EditBody          json.RawMessage `json:"editBody"`
	DateUtc           time.Time       `json:"dateUtc"`
}

// FieldChange 是 EditBody 中单个列的旧/新值。
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}
