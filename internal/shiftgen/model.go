package shiftgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
)

// Candidate 是模板展开后得到的候选班次，尚未与已有班次核对，也不会被直接落库。
type Candidate struct {
	WorkDateFromUtc time.Time `json:"workDateFromUtc"`
	WorkDateToUtc   time.Time `json:"workDateToUtc"`
	ShiftTypeID     int64     `json:"shiftTypeID"`
	WorklineID      *int64    `json:"worklineID"`
	OriginCellID    int64     `json:"originCellID"`
}

// Existing 是主体（某个空缺或某段雇佣关系）名下已落库的班次。
// 分类只需要时间区间、工作线的可重叠标志和软删除状态，
// 空缺班次和员工班次都先映射成这个结构再参与分类。
type Existing struct {
	ID                  int64     `json:"id"`
	WorkDateFromUtc     time.Time `json:"workDateFromUtc"`
	WorkDateToUtc       time.Time `json:"workDateToUtc"`
	WorklineID          *int64    `json:"worklineID"`
	IsOverlapAcceptable *bool     `json:"isOverlapAcceptable"` // 来自工作线，没有工作线时为 nil
	IsDeleted           bool      `json:"-"`
}

// OverlapReport 汇总候选班次与已有班次之间的冲突情况，
// 会原样放进警告响应中交给前端做二次确认。
type OverlapReport struct {
	IsAcceptableOverlappingExists   bool       `json:"isAcceptableOverlappingExists"`
	IsUnacceptableOverlappingExists bool       `json:"isUnacceptableOverlappingExists"`
	AcceptableOverlapping           []Existing `json:"acceptableOverlapping"`
	UnacceptableOverlapping         []Existing `json:"unacceptableOverlapping"`
}

// ActionPlan 是冲突消解后的落库计划：先软删除再插入，两者都在同一个事务里执行。
type ActionPlan struct {
	SoftDeleteIDs []int64
	Inserts       []Candidate
}

// OverlapAction 是冲突处理策略，必须在分类之前就解析完成。
type OverlapAction int

const (
	ActionNotSpecified OverlapAction = iota
	ActionDeleteAndCreate
	ActionCreateWithOverlapping
)

func ParseOverlapAction(mnemocode string) (OverlapAction, error) {
	switch mnemocode {
	case domain.OverlapActionNotSpecified:
		return ActionNotSpecified, nil
	case domain.OverlapActionDeleteAndCreate:
		return ActionDeleteAndCreate, nil
	case domain.OverlapActionCreateWithOverlapping:
		return ActionCreateWithOverlapping, nil
	default:
		return 0, fmt.Errorf("未知的冲突处理策略: %q", mnemocode)
	}
}

type dayPatternKind int

const (
	weekdayPattern dayPatternKind = iota
	cyclePattern
)

// DayPattern 是单元格 dayInfoMnemocode 解析后的结果：
// week_days 模板解析为星期几，days_on_off 模板解析为循环中的位置（1..N）。
type DayPattern struct {
	kind          dayPatternKind
	weekday       time.Weekday
	cyclePosition int
}

var weekdayByMnemocode = map[string]time.Weekday{
	domain.DayInfoMonday:    time.Monday,
	domain.DayInfoTuesday:   time.Tuesday,
	domain.DayInfoWednesday: time.Wednesday,
	domain.DayInfoThursday:  time.Thursday,
	domain.DayInfoFriday:    time.Friday,
	domain.DayInfoSaturday:  time.Saturday,
	domain.DayInfoSunday:    time.Sunday,
}

// ParseDayPattern 按模板的应用方式解析 dayInfoMnemocode。
// days_on_off 模板只接受 day_1 ... day_N，N 为循环长度。
func ParseDayPattern(mnemocode string, applyTypeMnemocode string, cycleLength int32) (DayPattern, error) {
	switch applyTypeMnemocode {
	case domain.ApplyTypeWeekDays:
		weekday, ok := weekdayByMnemocode[mnemocode]
		if !ok {
			return DayPattern{}, fmt.Errorf("week_days 模板中出现未知的 dayInfoMnemocode: %q", mnemocode)
		}
		return DayPattern{kind: weekdayPattern, weekday: weekday}, nil
	case domain.ApplyTypeDaysOnOff:
		raw, ok := strings.CutPrefix(mnemocode, domain.DayInfoCyclePrefix)
		if !ok {
			return DayPattern{}, fmt.Errorf("days_on_off 模板中出现未知的 dayInfoMnemocode: %q", mnemocode)
		}
		position, err := strconv.Atoi(raw)
		if err != nil {
			return DayPattern{}, fmt.Errorf("days_on_off 模板中出现未知的 dayInfoMnemocode: %q", mnemocode)
		}
		if position < 1 || position > int(cycleLength) {
			return DayPattern{}, fmt.Errorf("dayInfoMnemocode %q 超出了循环长度 %d", mnemocode, cycleLength)
		}
		return DayPattern{kind: cyclePattern, cyclePosition: position}, nil
	default:
		return DayPattern{}, fmt.Errorf("未知的模板应用方式: %q", applyTypeMnemocode)
	}
}

// Matches 判断该模式在第 cyclePosition 个循环日（1..N）或 weekday 上是否命中。
func (p DayPattern) Matches(weekday time.Weekday, cyclePosition int) bool {
	switch p.kind {
	case weekdayPattern:
		return p.weekday == weekday
	case cyclePattern:
		return p.cyclePosition == cyclePosition
	default:
		return false
	}
}
