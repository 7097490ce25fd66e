package utils

import (
	"testing"
)

func TestGenerateRandomTimetableTemplateIsValid(t *testing.T) {
	worklineID := int64(7)

	for i := 0; i < 200; i++ {
		template := GenerateRandomTimetableTemplate(1, 2, &worklineID)
		if err := ValidateTimetableTemplate(template); err != nil {
			t.Fatalf("随机生成的模板未通过校验: %v\n%+v", err, template)
		}

		seen := make(map[string]bool)
		for _, cell := range template.Cells {
			if seen[cell.DayInfoMnemocode] {
				t.Fatalf("同一模板内出现重复的日助记码: %s", cell.DayInfoMnemocode)
			}
			seen[cell.DayInfoMnemocode] = true
		}
	}
}

func TestGenerateUsernameFromChineseName(t *testing.T) {
	username := GenerateUsernameFromChineseName("张伟")
	if username == "" {
		t.Fatal("用户名不应为空")
	}
	for _, r := range username {
		if r < '0' || (r > '9' && r < 'a') || r > 'z' {
			t.Fatalf("用户名应只包含小写拼音和数字, 实际为 %q", username)
		}
	}
}

func TestGenerateRandomPasswordLength(t *testing.T) {
	for _, length := range []int{1, 8, 32} {
		if got := len([]rune(GenerateRandomPassword(length))); got != length {
			t.Fatalf("密码长度为 %d, 期望 %d", got, length)
		}
	}
}
