package shiftgen

import "time"

// Classify 对候选班次与主体名下已有班次做两两的时间相交判定。
// 区间按左闭右开 [from, to) 处理：一个班次结束的瞬间另一个班次开始，
// 只算相邻，不算冲突。已软删除的班次不参与判定。
//
// worklineAcceptable 是工作线 ID 到 isOverlapAcceptable 的映射，
// 只有相交双方的工作线都允许重叠时才归入可接受一侧；
// 没有工作线的班次一律按不允许重叠处理。
func Classify(candidates []Candidate, existing []Existing, worklineAcceptable map[int64]bool) *OverlapReport {
	report := &OverlapReport{
		AcceptableOverlapping:   []Existing{},
		UnacceptableOverlapping: []Existing{},
	}

	for _, ex := range existing {
		if ex.IsDeleted {
			continue
		}

		intersects := false
		unacceptable := false

		for _, cand := range candidates {
			if !intervalsOverlap(cand.WorkDateFromUtc, cand.WorkDateToUtc, ex.WorkDateFromUtc, ex.WorkDateToUtc) {
				continue
			}
			intersects = true

			if !pairAcceptable(cand, ex, worklineAcceptable) {
				unacceptable = true
				break
			}
		}

		if !intersects {
			continue
		}

		if unacceptable {
			report.IsUnacceptableOverlappingExists = true
			report.UnacceptableOverlapping = append(report.UnacceptableOverlapping, ex)
		} else {
			report.IsAcceptableOverlappingExists = true
			report.AcceptableOverlapping = append(report.AcceptableOverlapping, ex)
		}
	}

	return report
}

func intervalsOverlap(aFrom, aTo, bFrom, bTo time.Time) bool {
	return aFrom.Before(bTo) && bFrom.Before(aTo)
}

func pairAcceptable(cand Candidate, ex Existing, worklineAcceptable map[int64]bool) bool {
	if cand.WorklineID == nil || !worklineAcceptable[*cand.WorklineID] {
		return false
	}
	if ex.IsOverlapAcceptable == nil {
		return false
	}
	return *ex.IsOverlapAcceptable
}
