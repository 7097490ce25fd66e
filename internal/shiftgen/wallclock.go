package shiftgen

import (
	"fmt"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04:05"
	timeLayoutShort = "15:04"
)

// Converter 在本地挂钟时间和 UTC 时刻之间做纯函数式的转换。
// 时区解析通过 lookup 注入，默认用 time.LoadLocation，测试时可以替换。
type Converter struct {
	lookup func(name string) (*time.Location, error)
}

func NewConverter() *Converter {
	return &Converter{lookup: time.LoadLocation}
}

func NewConverterWithLookup(lookup func(name string) (*time.Location, error)) *Converter {
	return &Converter{lookup: lookup}
}

// ToUTC 把 (本地日期, 本地时间, 时区标识) 转换为 UTC 时刻。
// 日期必须是合法的 YYYY-MM-DD（2024-02-30 这类会被拒绝），
// 时间接受 HH:MM 或 HH:MM:SS。夏令时切换时沿用标准库的消歧结果。
func (c *Converter) ToUTC(localDate string, localTime string, tzMarker string) (time.Time, error) {
	loc, err := c.lookup(tzMarker)
	if err != nil {
		return time.Time{}, fmt.Errorf("无法解析时区 %q: %w", tzMarker, err)
	}

	date, err := time.Parse(DateLayout, localDate)
	if err != nil {
		return time.Time{}, &WrongDateFormatError{Field: "date", Value: localDate}
	}

	clock, err := parseClock(localTime)
	if err != nil {
		return time.Time{}, &WrongTimeFormatError{Field: "time", Value: localTime}
	}

	local := time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, loc)

	return local.UTC(), nil
}

// FromUTC 把 UTC 时刻换算回指定时区的 (本地日期, 本地时间)。
func (c *Converter) FromUTC(utc time.Time, tzMarker string) (string, string, error) {
	loc, err := c.lookup(tzMarker)
	if err != nil {
		return "", "", fmt.Errorf("无法解析时区 %q: %w", tzMarker, err)
	}

	local := utc.In(loc)
	return local.Format(DateLayout), local.Format(TimeLayout), nil
}

func parseClock(value string) (time.Time, error) {
	clock, err := time.Parse(TimeLayout, value)
	if err == nil {
		return clock, nil
	}
	return time.Parse(timeLayoutShort, value)
}
