package shiftgen

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
)

// Expander 把时间表模板在一段日期区间上展开成候选班次。
// Expand 是纯函数：同样的输入一定产出同样的序列，结果数量
// 不会超过 天数 × 单元格数。
type Expander struct {
	converter *Converter
}

func NewExpander(converter *Converter) *Expander {
	return &Expander{converter: converter}
}

func (e *Expander) Expand(template *domain.TimetableTemplate, dateStartFix string, dateEndFix string, tzMarker string) ([]Candidate, error) {
	dateStart, err := time.Parse(DateLayout, dateStartFix)
	if err != nil {
		return nil, &WrongDateFormatError{Field: "dateStartFix", Value: dateStartFix}
	}
	dateEnd, err := time.Parse(DateLayout, dateEndFix)
	if err != nil {
		return nil, &WrongDateFormatError{Field: "dateEndFix", Value: dateEndFix}
	}
	if dateStart.After(dateEnd) {
		return nil, &DatePeriodError{DateStart: dateStartFix, DateEnd: dateEndFix}
	}

	// days_on_off 模板需要锚点日期和循环长度才能算出循环位置
	var anchor time.Time
	var cycleLength int32
	if template.ApplyTypeMnemocode == domain.ApplyTypeDaysOnOff {
		if template.DaysOnOffLength == nil {
			return nil, errors.New("days_on_off 模板缺少 daysOnOffLength")
		}
		cycleLength = *template.DaysOnOffLength

		anchor, err = time.Parse(DateLayout, template.StartingPointDateFix)
		if err != nil {
			return nil, &WrongDateFormatError{Field: "startingPointDateFix", Value: template.StartingPointDateFix}
		}
	}

	// 先一次性解析所有单元格的日模式，任何一个不合法都直接中止，不产出部分结果
	patterns := make([]DayPattern, len(template.Cells))
	for i, cell := range template.Cells {
		pattern, err := ParseDayPattern(cell.DayInfoMnemocode, template.ApplyTypeMnemocode, cycleLength)
		if err != nil {
			return nil, err
		}
		patterns[i] = pattern
	}

	candidates := []Candidate{}

	for day := dateStart; !day.After(dateEnd); day = day.AddDate(0, 0, 1) {
		cyclePosition := 0
		if template.ApplyTypeMnemocode == domain.ApplyTypeDaysOnOff {
			// 向下取整的模即使在锚点之前的日期也能得到合法的非负位置
			offset := int(day.Sub(anchor) / (24 * time.Hour))
			cyclePosition = floorMod(offset, int(cycleLength)) + 1
		}

		for i, cell := range template.Cells {
			if !patterns[i].Matches(day.Weekday(), cyclePosition) {
				continue
			}

			workDateFromUtc, err := e.converter.ToUTC(day.Format(DateLayout), cell.TimeFrom, tzMarker)
			if err != nil {
				var timeErr *WrongTimeFormatError
				if errors.As(err, &timeErr) {
					timeErr.Field = fmt.Sprintf("cells[%d].timeFrom", i)
				}
				return nil, err
			}

			// 结束时刻在 UTC 上直接加时长。跨夏令时的班次保持挂钟意图，
			// UTC 跨度随真实偏移变化，不做修正。
			candidates = append(candidates, Candidate{
				WorkDateFromUtc: workDateFromUtc,
				WorkDateToUtc:   workDateFromUtc.Add(time.Duration(cell.DurationMinutes) * time.Minute),
				ShiftTypeID:     cell.ShiftTypeID,
				WorklineID:      cell.WorklineID,
				OriginCellID:    cell.ID,
			})
		}
	}

	// 按 UTC 开始时刻升序，同一时刻按单元格声明顺序保持稳定
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].WorkDateFromUtc.Before(candidates[j].WorkDateFromUtc)
	})

	return candidates, nil
}

func floorMod(x int, n int) int {
	return ((x % n) + n) % n
}
