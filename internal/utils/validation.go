package utils

import (
	"fmt"
	"time"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
	"github.com/paiban-dev/workforce-manager/backend/internal/shiftgen"
)

// ValidateTimetableTemplate 检查模板的跨字段约束。
// validator 的标签只能覆盖单个字段的形状，这里补上互斥关系：
// daysOnOffLength 当且仅当应用方式为 days_on_off 时出现。
func ValidateTimetableTemplate(template *domain.TimetableTemplate) error {
	switch template.ApplyTypeMnemocode {
	case domain.ApplyTypeWeekDays:
		if template.DaysOnOffLength != nil {
			return fmt.Errorf("week_days 模板不允许携带 daysOnOffLength")
		}
	case domain.ApplyTypeDaysOnOff:
		if template.DaysOnOffLength == nil {
			return fmt.Errorf("days_on_off 模板必须携带 daysOnOffLength")
		}
		if *template.DaysOnOffLength < 1 || *template.DaysOnOffLength > 7 {
			return fmt.Errorf("daysOnOffLength 必须在 1 到 7 之间")
		}
		if _, err := time.Parse(shiftgen.DateLayout, template.StartingPointDateFix); err != nil {
			return fmt.Errorf("days_on_off 模板的锚点日期格式不正确: %q", template.StartingPointDateFix)
		}
	default:
		return fmt.Errorf("未知的模板应用方式: %q", template.ApplyTypeMnemocode)
	}

	if len(template.Cells) < 1 || len(template.Cells) > 7 {
		return fmt.Errorf("模板的单元格数量必须在 1 到 7 之间")
	}
	if template.ApplyTypeMnemocode == domain.ApplyTypeDaysOnOff && len(template.Cells) > int(*template.DaysOnOffLength) {
		return fmt.Errorf("days_on_off 模板的单元格数量不能超过循环长度 %d", *template.DaysOnOffLength)
	}

	var cycleLength int32
	if template.DaysOnOffLength != nil {
		cycleLength = *template.DaysOnOffLength
	}

	for i, cell := range template.Cells {
		if cell.DurationMinutes <= 0 {
			return fmt.Errorf("第 %d 个单元格的时长必须大于 0", i+1)
		}
		if err := validateTimeOfDay(cell.TimeFrom); err != nil {
			return fmt.Errorf("第 %d 个单元格的开始时间格式不正确: %q", i+1, cell.TimeFrom)
		}
		if _, err := shiftgen.ParseDayPattern(cell.DayInfoMnemocode, template.ApplyTypeMnemocode, cycleLength); err != nil {
			return fmt.Errorf("第 %d 个单元格: %w", i+1, err)
		}
	}

	return nil
}

func validateTimeOfDay(value string) error {
	if _, err := time.Parse(shiftgen.TimeLayout, value); err == nil {
		return nil
	}
	if _, err := time.Parse("15:04", value); err == nil {
		return nil
	}
	return fmt.Errorf("时间格式不正确")
}
