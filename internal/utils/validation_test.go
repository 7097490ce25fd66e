package utils

import (
	"testing"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
)

func int32Ptr(v int32) *int32 {
	return &v
}

func validWeekDaysTemplate() *domain.TimetableTemplate {
	return &domain.TimetableTemplate{
		ApplyTypeMnemocode: domain.ApplyTypeWeekDays,
		Cells: []domain.TimetableTemplateCell{
			{DayInfoMnemocode: domain.DayInfoMonday, TimeFrom: "09:00:00", DurationMinutes: 480, ShiftTypeID: 1},
		},
	}
}

func validDaysOnOffTemplate() *domain.TimetableTemplate {
	return &domain.TimetableTemplate{
		ApplyTypeMnemocode:   domain.ApplyTypeDaysOnOff,
		StartingPointDateFix: "2024-01-01",
		DaysOnOffLength:      int32Ptr(3),
		Cells: []domain.TimetableTemplateCell{
			{DayInfoMnemocode: "day_1", TimeFrom: "08:00", DurationMinutes: 600, ShiftTypeID: 1},
		},
	}
}

func TestValidateTimetableTemplateOK(t *testing.T) {
	if err := ValidateTimetableTemplate(validWeekDaysTemplate()); err != nil {
		t.Fatalf("合法的 week_days 模板被拒绝: %v", err)
	}
	if err := ValidateTimetableTemplate(validDaysOnOffTemplate()); err != nil {
		t.Fatalf("合法的 days_on_off 模板被拒绝: %v", err)
	}
}

func TestValidateTimetableTemplateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.TimetableTemplate) *domain.TimetableTemplate
	}{
		{
			name: "未知的应用方式",
			mutate: func(tt *domain.TimetableTemplate) *domain.TimetableTemplate {
				tt.ApplyTypeMnemocode = "fortnightly"
				return tt
			},
		},
		{
			name: "week_days 携带了循环长度",
			mutate: func(tt *domain.TimetableTemplate) *domain.TimetableTemplate {
				tt.DaysOnOffLength = int32Ptr(3)
				return tt
			},
		},
		{
			name: "没有任何单元格",
			mutate: func(tt *domain.TimetableTemplate) *domain.TimetableTemplate {
				tt.Cells = nil
				return tt
			},
		},
		{
			name: "单元格时长为零",
			mutate: func(tt *domain.TimetableTemplate) *domain.TimetableTemplate {
				tt.Cells[0].DurationMinutes = 0
				return tt
			},
		},
		{
			name: "单元格时间格式非法",
			mutate: func(tt *domain.TimetableTemplate) *domain.TimetableTemplate {
				tt.Cells[0].TimeFrom = "9 o'clock"
				return tt
			},
		},
		{
			name: "单元格日助记码非法",
			mutate: func(tt *domain.TimetableTemplate) *domain.TimetableTemplate {
				tt.Cells[0].DayInfoMnemocode = "day_1"
				return tt
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template := tt.mutate(validWeekDaysTemplate())
			if err := ValidateTimetableTemplate(template); err == nil {
				t.Fatal("非法模板应被拒绝")
			}
		})
	}
}

func TestValidateDaysOnOffTemplateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.TimetableTemplate) *domain.TimetableTemplate
	}{
		{
			name: "缺少循环长度",
			mutate: func(tt *domain.TimetableTemplate) *domain.TimetableTemplate {
				tt.DaysOnOffLength = nil
				return tt
			},
		},
		{
			name: "循环长度超出范围",
			mutate: func(tt *domain.TimetableTemplate) *domain.TimetableTemplate {
				tt.DaysOnOffLength = int32Ptr(8)
				return tt
			},
		},
		{
			name: "锚点日期格式非法",
			mutate: func(tt *domain.TimetableTemplate) *domain.TimetableTemplate {
				tt.StartingPointDateFix = "01.01.2024"
				return tt
			},
		},
		{
			name: "单元格数量超过循环长度",
			mutate: func(tt *domain.TimetableTemplate) *domain.TimetableTemplate {
				tt.DaysOnOffLength = int32Ptr(1)
				tt.Cells = append(tt.Cells, domain.TimetableTemplateCell{
					DayInfoMnemocode: "day_1", TimeFrom: "10:00", DurationMinutes: 60, ShiftTypeID: 1,
				})
				return tt
			},
		},
		{
			name: "单元格的循环位置越界",
			mutate: func(tt *domain.TimetableTemplate) *domain.TimetableTemplate {
				tt.Cells[0].DayInfoMnemocode = "day_4"
				return tt
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template := tt.mutate(validDaysOnOffTemplate())
			if err := ValidateTimetableTemplate(template); err == nil {
				t.Fatal("非法模板应被拒绝")
			}
		})
	}
}
