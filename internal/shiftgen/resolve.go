package shiftgen

import "fmt"

// Resolve 按给定的策略把冲突报告变成落库计划。
// 三种策略互斥:
//   - not_specified: 只要存在任何冲突就返回携带完整报告的警告，由调用方二次确认；
//   - delete_and_create: 无条件继续，软删除所有被牵连的已有班次，插入全部候选；
//   - create_with_overlapping: 存在不允许的冲突则硬性中止，否则只插入、不动已有班次。
func Resolve(report *OverlapReport, candidates []Candidate, action OverlapAction) (*ActionPlan, error) {
	switch action {
	case ActionNotSpecified:
		if report.IsAcceptableOverlappingExists || report.IsUnacceptableOverlappingExists {
			return nil, &OverlapWarningError{Report: report}
		}
		return &ActionPlan{SoftDeleteIDs: []int64{}, Inserts: candidates}, nil

	case ActionDeleteAndCreate:
		ids := make([]int64, 0, len(report.AcceptableOverlapping)+len(report.UnacceptableOverlapping))
		for _, ex := range report.AcceptableOverlapping {
			if !ex.IsDeleted {
				ids = append(ids, ex.ID)
			}
		}
		for _, ex := range report.UnacceptableOverlapping {
			if !ex.IsDeleted {
				ids = append(ids, ex.ID)
			}
		}
		return &ActionPlan{SoftDeleteIDs: ids, Inserts: candidates}, nil

	case ActionCreateWithOverlapping:
		if report.IsUnacceptableOverlappingExists {
			return nil, &UnacceptableOverlapError{Report: report}
		}
		return &ActionPlan{SoftDeleteIDs: []int64{}, Inserts: candidates}, nil

	default:
		return nil, fmt.Errorf("未知的冲突处理策略: %d", action)
	}
}
