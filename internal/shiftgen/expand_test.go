package shiftgen

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
)

func newTestExpander() *Expander {
	return NewExpander(NewConverter())
}

func int32Ptr(v int32) *int32 {
	return &v
}

func TestExpandWeekDays(t *testing.T) {
	expander := newTestExpander()

	template := &domain.TimetableTemplate{
		ApplyTypeMnemocode: domain.ApplyTypeWeekDays,
		Cells: []domain.TimetableTemplateCell{
			{ID: 1, DayInfoMnemocode: domain.DayInfoMonday, TimeFrom: "09:00:00", DurationMinutes: 480, ShiftTypeID: 10},
			{ID: 2, DayInfoMnemocode: domain.DayInfoFriday, TimeFrom: "14:00:00", DurationMinutes: 240, ShiftTypeID: 10},
		},
	}

	// 2024-03-04 是周一，两周的区间里应该命中 2 个周一和 2 个周五
	candidates, err := expander.Expand(template, "2024-03-04", "2024-03-17", "UTC")
	if err != nil {
		t.Fatalf("Expand 返回错误: %v", err)
	}
	if len(candidates) != 4 {
		t.Fatalf("候选数量为 %d, 期望 4", len(candidates))
	}

	wantStarts := []time.Time{
		time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 8, 14, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC),
	}
	for i, want := range wantStarts {
		if !candidates[i].WorkDateFromUtc.Equal(want) {
			t.Fatalf("第 %d 个候选的开始时刻为 %v, 期望 %v", i, candidates[i].WorkDateFromUtc, want)
		}
	}

	// 结束时刻等于开始时刻加时长
	first := candidates[0]
	if !first.WorkDateToUtc.Equal(first.WorkDateFromUtc.Add(480 * time.Minute)) {
		t.Fatalf("结束时刻 %v 与时长不一致", first.WorkDateToUtc)
	}
	if first.OriginCellID != 1 {
		t.Fatalf("候选应记录来源单元格, 实际为 %d", first.OriginCellID)
	}
}

func TestExpandWeekDaysFullCoverage(t *testing.T) {
	expander := newTestExpander()

	// 每个星期几各一个单元格，两周的区间应该每天恰好产出一个候选
	days := []string{
		domain.DayInfoMonday, domain.DayInfoTuesday, domain.DayInfoWednesday,
		domain.DayInfoThursday, domain.DayInfoFriday, domain.DayInfoSaturday, domain.DayInfoSunday,
	}
	template := &domain.TimetableTemplate{ApplyTypeMnemocode: domain.ApplyTypeWeekDays}
	for i, day := range days {
		template.Cells = append(template.Cells, domain.TimetableTemplateCell{
			ID: int64(i + 1), DayInfoMnemocode: day, TimeFrom: "10:00:00", DurationMinutes: 60, ShiftTypeID: 10,
		})
	}

	candidates, err := expander.Expand(template, "2024-03-04", "2024-03-17", "UTC")
	if err != nil {
		t.Fatalf("Expand 返回错误: %v", err)
	}
	if len(candidates) != 14 {
		t.Fatalf("候选数量为 %d, 期望 14", len(candidates))
	}
	for i, cand := range candidates {
		want := time.Date(2024, 3, 4+i, 10, 0, 0, 0, time.UTC)
		if !cand.WorkDateFromUtc.Equal(want) {
			t.Fatalf("第 %d 个候选落在 %v, 期望 %v", i, cand.WorkDateFromUtc, want)
		}
	}
}

func TestExpandDaysOnOff(t *testing.T) {
	expander := newTestExpander()

	template := &domain.TimetableTemplate{
		ApplyTypeMnemocode:   domain.ApplyTypeDaysOnOff,
		StartingPointDateFix: "2024-01-01",
		DaysOnOffLength:      int32Ptr(3),
		Cells: []domain.TimetableTemplateCell{
			{ID: 1, DayInfoMnemocode: "day_1", TimeFrom: "08:00:00", DurationMinutes: 600, ShiftTypeID: 10},
		},
	}

	// 锚点 2024-01-01 是循环的第 1 天，3 天一轮，区间内命中 01/04/07 三天
	candidates, err := expander.Expand(template, "2024-01-01", "2024-01-09", "UTC")
	if err != nil {
		t.Fatalf("Expand 返回错误: %v", err)
	}

	wantDates := []string{"2024-01-01", "2024-01-04", "2024-01-07"}
	if len(candidates) != len(wantDates) {
		t.Fatalf("候选数量为 %d, 期望 %d", len(candidates), len(wantDates))
	}
	for i, want := range wantDates {
		got := candidates[i].WorkDateFromUtc.Format(DateLayout)
		if got != want {
			t.Fatalf("第 %d 个候选落在 %s, 期望 %s", i, got, want)
		}
	}
}

func TestExpandDaysOnOffBeforeAnchor(t *testing.T) {
	expander := newTestExpander()

	template := &domain.TimetableTemplate{
		ApplyTypeMnemocode:   domain.ApplyTypeDaysOnOff,
		StartingPointDateFix: "2024-01-10",
		DaysOnOffLength:      int32Ptr(3),
		Cells: []domain.TimetableTemplateCell{
			{ID: 1, DayInfoMnemocode: "day_1", TimeFrom: "08:00:00", DurationMinutes: 60, ShiftTypeID: 10},
		},
	}

	// 区间整个落在锚点之前，循环位置要靠向下取整的模推回去:
	// 01-04 和 01-07 与锚点的距离都是 3 的整数倍，同为循环第 1 天
	candidates, err := expander.Expand(template, "2024-01-03", "2024-01-08", "UTC")
	if err != nil {
		t.Fatalf("Expand 返回错误: %v", err)
	}

	wantDates := []string{"2024-01-04", "2024-01-07"}
	if len(candidates) != len(wantDates) {
		t.Fatalf("候选数量为 %d, 期望 %d", len(candidates), len(wantDates))
	}
	for i, want := range wantDates {
		got := candidates[i].WorkDateFromUtc.Format(DateLayout)
		if got != want {
			t.Fatalf("第 %d 个候选落在 %s, 期望 %s", i, got, want)
		}
	}
}

func TestExpandInvalidPeriod(t *testing.T) {
	expander := newTestExpander()
	template := &domain.TimetableTemplate{
		ApplyTypeMnemocode: domain.ApplyTypeWeekDays,
		Cells: []domain.TimetableTemplateCell{
			{ID: 1, DayInfoMnemocode: domain.DayInfoMonday, TimeFrom: "09:00:00", DurationMinutes: 60, ShiftTypeID: 10},
		},
	}

	t.Run("开始晚于结束", func(t *testing.T) {
		_, err := expander.Expand(template, "2024-03-10", "2024-03-01", "UTC")
		var periodErr *DatePeriodError
		if !errors.As(err, &periodErr) {
			t.Fatalf("期望 DatePeriodError, 实际为 %v", err)
		}
	})

	t.Run("开始日期格式非法", func(t *testing.T) {
		_, err := expander.Expand(template, "03/01/2024", "2024-03-10", "UTC")
		var dateErr *WrongDateFormatError
		if !errors.As(err, &dateErr) {
			t.Fatalf("期望 WrongDateFormatError, 实际为 %v", err)
		}
		if dateErr.Field != "dateStartFix" {
			t.Fatalf("错误应指向 dateStartFix, 实际为 %q", dateErr.Field)
		}
	})
}

func TestExpandBadCellAbortsWithoutPartialResult(t *testing.T) {
	expander := newTestExpander()
	template := &domain.TimetableTemplate{
		ApplyTypeMnemocode: domain.ApplyTypeWeekDays,
		Cells: []domain.TimetableTemplateCell{
			{ID: 1, DayInfoMnemocode: domain.DayInfoMonday, TimeFrom: "09:00:00", DurationMinutes: 60, ShiftTypeID: 10},
			{ID: 2, DayInfoMnemocode: "someday", TimeFrom: "09:00:00", DurationMinutes: 60, ShiftTypeID: 10},
		},
	}

	candidates, err := expander.Expand(template, "2024-03-04", "2024-03-10", "UTC")
	if err == nil {
		t.Fatal("非法单元格应中止整个展开")
	}
	if candidates != nil {
		t.Fatalf("出错时不应产出部分结果, 实际有 %d 个候选", len(candidates))
	}
}

func TestExpandBadCellTimeReportsCellField(t *testing.T) {
	expander := newTestExpander()
	template := &domain.TimetableTemplate{
		ApplyTypeMnemocode: domain.ApplyTypeWeekDays,
		Cells: []domain.TimetableTemplateCell{
			{ID: 1, DayInfoMnemocode: domain.DayInfoMonday, TimeFrom: "9 am", DurationMinutes: 60, ShiftTypeID: 10},
		},
	}

	_, err := expander.Expand(template, "2024-03-04", "2024-03-10", "UTC")
	var timeErr *WrongTimeFormatError
	if !errors.As(err, &timeErr) {
		t.Fatalf("期望 WrongTimeFormatError, 实际为 %v", err)
	}
	if timeErr.Field != "cells[0].timeFrom" {
		t.Fatalf("错误应指向具体单元格, 实际为 %q", timeErr.Field)
	}
}

func TestExpandDeterministicAndOrdered(t *testing.T) {
	expander := newTestExpander()
	worklineID := int64(7)
	template := &domain.TimetableTemplate{
		ApplyTypeMnemocode: domain.ApplyTypeWeekDays,
		Cells: []domain.TimetableTemplateCell{
			{ID: 1, DayInfoMnemocode: domain.DayInfoWednesday, TimeFrom: "18:00:00", DurationMinutes: 120, ShiftTypeID: 10, WorklineID: &worklineID},
			{ID: 2, DayInfoMnemocode: domain.DayInfoWednesday, TimeFrom: "08:00:00", DurationMinutes: 120, ShiftTypeID: 10},
		},
	}

	first, err := expander.Expand(template, "2024-03-01", "2024-03-31", "Asia/Shanghai")
	if err != nil {
		t.Fatalf("Expand 返回错误: %v", err)
	}
	second, err := expander.Expand(template, "2024-03-01", "2024-03-31", "Asia/Shanghai")
	if err != nil {
		t.Fatalf("Expand 返回错误: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("同样的输入两次展开结果不一致")
	}

	for i := 1; i < len(first); i++ {
		if first[i].WorkDateFromUtc.Before(first[i-1].WorkDateFromUtc) {
			t.Fatalf("候选未按开始时刻升序: 第 %d 个在第 %d 个之前", i, i-1)
		}
	}
}

func TestExpandAcrossDSTKeepsWallClock(t *testing.T) {
	expander := newTestExpander()
	template := &domain.TimetableTemplate{
		ApplyTypeMnemocode: domain.ApplyTypeWeekDays,
		Cells: []domain.TimetableTemplateCell{
			{ID: 1, DayInfoMnemocode: domain.DayInfoSunday, TimeFrom: "09:00:00", DurationMinutes: 60, ShiftTypeID: 10},
		},
	}

	// 纽约在 2024-03-10 进入夏令时，两个周日的 UTC 开始时刻相差 167 小时而不是 168
	candidates, err := expander.Expand(template, "2024-03-03", "2024-03-10", "America/New_York")
	if err != nil {
		t.Fatalf("Expand 返回错误: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("候选数量为 %d, 期望 2", len(candidates))
	}

	gap := candidates[1].WorkDateFromUtc.Sub(candidates[0].WorkDateFromUtc)
	if gap != 167*time.Hour {
		t.Fatalf("跨夏令时的间隔为 %v, 期望 167h", gap)
	}
}

func TestFloorMod(t *testing.T) {
	tests := []struct {
		x, n, want int
	}{
		{0, 3, 0},
		{5, 3, 2},
		{-1, 3, 2},
		{-3, 3, 0},
		{-7, 3, 2},
	}

	for _, tt := range tests {
		if got := floorMod(tt.x, tt.n); got != tt.want {
			t.Fatalf("floorMod(%d, %d) = %d, 期望 %d", tt.x, tt.n, got, tt.want)
		}
	}
}
