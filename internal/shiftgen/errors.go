package shiftgen

import "fmt"

// WrongDateFormatError 表示某个字段携带的日期无法解析，Value 保留原始输入。
type WrongDateFormatError struct {
	Field string
	Value string
}

func (e *WrongDateFormatError) Error() string {
	return fmt.Sprintf("字段 %s 的日期格式不正确: %q", e.Field, e.Value)
}

// WrongTimeFormatError 表示某个字段携带的时间无法解析，Value 保留原始输入。
type WrongTimeFormatError struct {
	Field string
	Value string
}

func (e *WrongTimeFormatError) Error() string {
	return fmt.Sprintf("字段 %s 的时间格式不正确: %q", e.Field, e.Value)
}

// DatePeriodError 表示开始日期晚于结束日期。
type DatePeriodError struct {
	DateStart string
	DateEnd   string
}

func (e *DatePeriodError) Error() string {
	return fmt.Sprintf("日期区间不合法: 开始日期 %s 晚于结束日期 %s", e.DateStart, e.DateEnd)
}

// OverlapWarningError 不是系统故障，而是在策略为 not_specified 时
// 发现冲突后发出的确认信号，报告会原样交给调用方。
type OverlapWarningError struct {
	Report *OverlapReport
}

func (e *OverlapWarningError) Error() string {
	return "存在与已有班次的时间冲突，请确认处理策略后重新提交"
}

// UnacceptableOverlapError 表示在 create_with_overlapping 策略下
// 发现了不允许的冲突，整个操作被硬性中止，不会有任何写入。
type UnacceptableOverlapError struct {
	Report *OverlapReport
}

func (e *UnacceptableOverlapError) Error() string {
	return "存在不允许共存的班次冲突，操作已中止"
}
