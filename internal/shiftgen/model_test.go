package shiftgen

import (
	"testing"
	"time"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
)

func TestParseDayPatternWeekDays(t *testing.T) {
	pattern, err := ParseDayPattern(domain.DayInfoSaturday, domain.ApplyTypeWeekDays, 0)
	if err != nil {
		t.Fatalf("ParseDayPattern 返回错误: %v", err)
	}
	if !pattern.Matches(time.Saturday, 0) {
		t.Fatal("周六的模式应命中周六")
	}
	if pattern.Matches(time.Sunday, 0) {
		t.Fatal("周六的模式不应命中周日")
	}

	if _, err := ParseDayPattern("day_1", domain.ApplyTypeWeekDays, 0); err == nil {
		t.Fatal("week_days 模板不应接受 day_N 形式的助记码")
	}
}

func TestParseDayPatternDaysOnOff(t *testing.T) {
	pattern, err := ParseDayPattern("day_2", domain.ApplyTypeDaysOnOff, 3)
	if err != nil {
		t.Fatalf("ParseDayPattern 返回错误: %v", err)
	}
	if !pattern.Matches(time.Monday, 2) {
		t.Fatal("day_2 应命中循环第 2 天")
	}
	if pattern.Matches(time.Monday, 1) {
		t.Fatal("day_2 不应命中循环第 1 天")
	}

	tests := []struct {
		mnemocode string
	}{
		{"day_0"},
		{"day_4"},
		{"day_"},
		{"day_2x"},
		{"monday"},
	}
	for _, tt := range tests {
		if _, err := ParseDayPattern(tt.mnemocode, domain.ApplyTypeDaysOnOff, 3); err == nil {
			t.Fatalf("ParseDayPattern(%q) 应返回错误", tt.mnemocode)
		}
	}
}
