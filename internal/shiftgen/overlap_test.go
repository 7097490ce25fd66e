package shiftgen

import (
	"testing"
	"time"
)

func utc(hour int) time.Time {
	return time.Date(2024, 3, 15, hour, 0, 0, 0, time.UTC)
}

func int64Ptr(v int64) *int64 {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func TestClassifyBoundaryIsAdjacent(t *testing.T) {
	// 候选 [09:00, 12:00) 与已有 [12:00, 15:00) 只共享一个边界瞬间，不算冲突
	candidates := []Candidate{
		{WorkDateFromUtc: utc(9), WorkDateToUtc: utc(12)},
	}
	existing := []Existing{
		{ID: 1, WorkDateFromUtc: utc(12), WorkDateToUtc: utc(15)},
	}

	report := Classify(candidates, existing, nil)
	if report.IsAcceptableOverlappingExists || report.IsUnacceptableOverlappingExists {
		t.Fatalf("相邻班次不应判为冲突: %+v", report)
	}
}

func TestClassifyOverlapBuckets(t *testing.T) {
	acceptable := map[int64]bool{1: true, 2: false}

	tests := []struct {
		name             string
		candWorkline     *int64
		exWorkline       *int64
		exAcceptable     *bool
		wantAcceptable   bool
		wantUnacceptable bool
	}{
		{
			name:           "双方的工作线都允许重叠",
			candWorkline:   int64Ptr(1),
			exWorkline:     int64Ptr(1),
			exAcceptable:   boolPtr(true),
			wantAcceptable: true,
		},
		{
			name:             "候选一侧的工作线不允许重叠",
			candWorkline:     int64Ptr(2),
			exWorkline:       int64Ptr(1),
			exAcceptable:     boolPtr(true),
			wantUnacceptable: true,
		},
		{
			name:             "已有一侧的工作线不允许重叠",
			candWorkline:     int64Ptr(1),
			exWorkline:       int64Ptr(2),
			exAcceptable:     boolPtr(false),
			wantUnacceptable: true,
		},
		{
			name:             "候选没有工作线",
			candWorkline:     nil,
			exWorkline:       int64Ptr(1),
			exAcceptable:     boolPtr(true),
			wantUnacceptable: true,
		},
		{
			name:             "已有班次没有工作线",
			candWorkline:     int64Ptr(1),
			exWorkline:       nil,
			exAcceptable:     nil,
			wantUnacceptable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := []Candidate{
				{WorkDateFromUtc: utc(9), WorkDateToUtc: utc(12), WorklineID: tt.candWorkline},
			}
			existing := []Existing{
				{ID: 1, WorkDateFromUtc: utc(10), WorkDateToUtc: utc(13), WorklineID: tt.exWorkline, IsOverlapAcceptable: tt.exAcceptable},
			}

			report := Classify(candidates, existing, acceptable)
			if report.IsAcceptableOverlappingExists != tt.wantAcceptable {
				t.Fatalf("IsAcceptableOverlappingExists = %v, 期望 %v", report.IsAcceptableOverlappingExists, tt.wantAcceptable)
			}
			if report.IsUnacceptableOverlappingExists != tt.wantUnacceptable {
				t.Fatalf("IsUnacceptableOverlappingExists = %v, 期望 %v", report.IsUnacceptableOverlappingExists, tt.wantUnacceptable)
			}
		})
	}
}

func TestClassifySkipsDeleted(t *testing.T) {
	candidates := []Candidate{
		{WorkDateFromUtc: utc(9), WorkDateToUtc: utc(12)},
	}
	existing := []Existing{
		{ID: 1, WorkDateFromUtc: utc(10), WorkDateToUtc: utc(13), IsDeleted: true},
	}

	report := Classify(candidates, existing, nil)
	if report.IsAcceptableOverlappingExists || report.IsUnacceptableOverlappingExists {
		t.Fatalf("已软删除的班次不应参与分类: %+v", report)
	}
}

func TestClassifyWorstCaseWins(t *testing.T) {
	// 同一个已有班次与两个候选相交，其中一对不允许共存，整条记录归入不允许一侧
	acceptable := map[int64]bool{1: true}
	candidates := []Candidate{
		{WorkDateFromUtc: utc(9), WorkDateToUtc: utc(11), WorklineID: int64Ptr(1)},
		{WorkDateFromUtc: utc(11), WorkDateToUtc: utc(14)},
	}
	existing := []Existing{
		{ID: 1, WorkDateFromUtc: utc(10), WorkDateToUtc: utc(13), WorklineID: int64Ptr(1), IsOverlapAcceptable: boolPtr(true)},
	}

	report := Classify(candidates, existing, acceptable)
	if !report.IsUnacceptableOverlappingExists {
		t.Fatal("存在不允许共存的候选时整条记录应归入不允许一侧")
	}
	if report.IsAcceptableOverlappingExists {
		t.Fatal("同一条记录不应同时出现在两个桶里")
	}
	if len(report.UnacceptableOverlapping) != 1 || len(report.AcceptableOverlapping) != 0 {
		t.Fatalf("桶内容不符合预期: %+v", report)
	}
}
