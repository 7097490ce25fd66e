package shiftgen

import (
	"errors"
	"testing"
)

func TestParseOverlapAction(t *testing.T) {
	tests := []struct {
		mnemocode string
		want      OverlapAction
		wantErr   bool
	}{
		{"not_specified", ActionNotSpecified, false},
		{"delete_and_create", ActionDeleteAndCreate, false},
		{"create_with_overlapping", ActionCreateWithOverlapping, false},
		{"delete_everything", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseOverlapAction(tt.mnemocode)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseOverlapAction(%q) 应返回错误", tt.mnemocode)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseOverlapAction(%q) 返回错误: %v", tt.mnemocode, err)
		}
		if got != tt.want {
			t.Fatalf("ParseOverlapAction(%q) = %v, 期望 %v", tt.mnemocode, got, tt.want)
		}
	}
}

func TestResolveNotSpecified(t *testing.T) {
	candidates := []Candidate{{ShiftTypeID: 10}}

	t.Run("无冲突时全部插入", func(t *testing.T) {
		report := &OverlapReport{}
		plan, err := Resolve(report, candidates, ActionNotSpecified)
		if err != nil {
			t.Fatalf("Resolve 返回错误: %v", err)
		}
		if len(plan.SoftDeleteIDs) != 0 || len(plan.Inserts) != 1 {
			t.Fatalf("计划不符合预期: %+v", plan)
		}
	})

	t.Run("任何冲突都变成警告", func(t *testing.T) {
		report := &OverlapReport{
			IsAcceptableOverlappingExists: true,
			AcceptableOverlapping:         []Existing{{ID: 1}},
		}
		_, err := Resolve(report, candidates, ActionNotSpecified)
		var warningErr *OverlapWarningError
		if !errors.As(err, &warningErr) {
			t.Fatalf("期望 OverlapWarningError, 实际为 %v", err)
		}
		if warningErr.Report != report {
			t.Fatal("警告应携带完整的冲突报告")
		}
	})
}

func TestResolveDeleteAndCreate(t *testing.T) {
	candidates := []Candidate{{ShiftTypeID: 10}, {ShiftTypeID: 11}}
	report := &OverlapReport{
		IsAcceptableOverlappingExists:   true,
		IsUnacceptableOverlappingExists: true,
		AcceptableOverlapping:           []Existing{{ID: 1}},
		UnacceptableOverlapping:         []Existing{{ID: 2}, {ID: 3, IsDeleted: true}},
	}

	plan, err := Resolve(report, candidates, ActionDeleteAndCreate)
	if err != nil {
		t.Fatalf("Resolve 返回错误: %v", err)
	}

	// 两个桶里的未删除记录都要软删除，已删除的跳过
	if len(plan.SoftDeleteIDs) != 2 {
		t.Fatalf("软删除数量为 %d, 期望 2", len(plan.SoftDeleteIDs))
	}
	if plan.SoftDeleteIDs[0] != 1 || plan.SoftDeleteIDs[1] != 2 {
		t.Fatalf("软删除 ID 不符合预期: %v", plan.SoftDeleteIDs)
	}
	if len(plan.Inserts) != 2 {
		t.Fatalf("插入数量为 %d, 期望 2", len(plan.Inserts))
	}
}

func TestResolveCreateWithOverlapping(t *testing.T) {
	candidates := []Candidate{{ShiftTypeID: 10}}

	t.Run("只有允许的冲突时继续插入", func(t *testing.T) {
		report := &OverlapReport{
			IsAcceptableOverlappingExists: true,
			AcceptableOverlapping:         []Existing{{ID: 1}},
		}
		plan, err := Resolve(report, candidates, ActionCreateWithOverlapping)
		if err != nil {
			t.Fatalf("Resolve 返回错误: %v", err)
		}
		if len(plan.SoftDeleteIDs) != 0 {
			t.Fatalf("该策略不应软删除任何记录: %v", plan.SoftDeleteIDs)
		}
		if len(plan.Inserts) != 1 {
			t.Fatalf("插入数量为 %d, 期望 1", len(plan.Inserts))
		}
	})

	t.Run("存在不允许的冲突时硬性中止", func(t *testing.T) {
		report := &OverlapReport{
			IsUnacceptableOverlappingExists: true,
			UnacceptableOverlapping:         []Existing{{ID: 2}},
		}
		_, err := Resolve(report, candidates, ActionCreateWithOverlapping)
		var unacceptableErr *UnacceptableOverlapError
		if !errors.As(err, &unacceptableErr) {
			t.Fatalf("期望 UnacceptableOverlapError, 实际为 %v", err)
		}
		if unacceptableErr.Report != report {
			t.Fatal("错误应携带完整的冲突报告")
		}
	})
}

func TestResolveUnknownAction(t *testing.T) {
	if _, err := Resolve(&OverlapReport{}, nil, OverlapAction(42)); err == nil {
		t.Fatal("未知策略应返回错误")
	}
}
