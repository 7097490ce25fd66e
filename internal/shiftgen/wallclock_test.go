package shiftgen

import (
	"errors"
	"testing"
	"time"
)

func TestConverterToUTC(t *testing.T) {
	converter := NewConverter()

	tests := []struct {
		name      string
		localDate string
		localTime string
		tzMarker  string
		want      time.Time
	}{
		{
			name:      "莫斯科时间比 UTC 快 3 小时",
			localDate: "2024-03-15",
			localTime: "09:00:00",
			tzMarker:  "Europe/Moscow",
			want:      time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC),
		},
		{
			name:      "上海时间比 UTC 快 8 小时",
			localDate: "2024-03-15",
			localTime: "08:30:00",
			tzMarker:  "Asia/Shanghai",
			want:      time.Date(2024, 3, 15, 0, 30, 0, 0, time.UTC),
		},
		{
			name:      "接受不带秒的时间",
			localDate: "2024-03-15",
			localTime: "09:00",
			tzMarker:  "UTC",
			want:      time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := converter.ToUTC(tt.localDate, tt.localTime, tt.tzMarker)
			if err != nil {
				t.Fatalf("ToUTC 返回错误: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ToUTC = %v, 期望 %v", got, tt.want)
			}
		})
	}
}

func TestConverterToUTCInvalidInput(t *testing.T) {
	converter := NewConverter()

	t.Run("非法日期", func(t *testing.T) {
		_, err := converter.ToUTC("2024-02-30", "09:00:00", "UTC")
		var dateErr *WrongDateFormatError
		if !errors.As(err, &dateErr) {
			t.Fatalf("期望 WrongDateFormatError, 实际为 %v", err)
		}
		if dateErr.Value != "2024-02-30" {
			t.Fatalf("错误中应保留原始输入, 实际为 %q", dateErr.Value)
		}
	})

	t.Run("非法时间", func(t *testing.T) {
		_, err := converter.ToUTC("2024-03-15", "25:00:00", "UTC")
		var timeErr *WrongTimeFormatError
		if !errors.As(err, &timeErr) {
			t.Fatalf("期望 WrongTimeFormatError, 实际为 %v", err)
		}
	})

	t.Run("未知时区", func(t *testing.T) {
		if _, err := converter.ToUTC("2024-03-15", "09:00:00", "Mars/Olympus"); err == nil {
			t.Fatal("期望时区解析错误, 实际为 nil")
		}
	})
}

func TestConverterRoundTrip(t *testing.T) {
	converter := NewConverter()

	utc, err := converter.ToUTC("2024-07-01", "18:45:00", "Asia/Shanghai")
	if err != nil {
		t.Fatalf("ToUTC 返回错误: %v", err)
	}

	gotDate, gotTime, err := converter.FromUTC(utc, "Asia/Shanghai")
	if err != nil {
		t.Fatalf("FromUTC 返回错误: %v", err)
	}
	if gotDate != "2024-07-01" || gotTime != "18:45:00" {
		t.Fatalf("往返转换结果为 %s %s, 期望 2024-07-01 18:45:00", gotDate, gotTime)
	}
}

func TestConverterWithInjectedLookup(t *testing.T) {
	fixed := time.FixedZone("TEST", 2*60*60)
	converter := NewConverterWithLookup(func(name string) (*time.Location, error) {
		return fixed, nil
	})

	got, err := converter.ToUTC("2024-01-01", "10:00:00", "whatever")
	if err != nil {
		t.Fatalf("ToUTC 返回错误: %v", err)
	}
	want := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ToUTC = %v, 期望 %v", got, want)
	}
}
