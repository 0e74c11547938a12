package model

import (
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"午夜", "00:00", 0, false},
		{"一天最后一分钟", "23:59", 1439, false},
		{"中午过五分", "12:05", 725, false},
		{"不接受24:00", "24:00", 0, true},
		{"小时未补零", "7:00", 0, true},
		{"分钟超界", "12:60", 0, true},
		{"缺少冒号", "1200", 0, true},
		{"空字符串", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseClock(%q) 应返回错误", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) 返回错误: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, expected %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestShiftDefinition_HoursTenths(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  int
	}{
		{"整数工时", 7.0, 70},
		{"半小时", 5.5, 55},
		{"一刻度", 0.1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ShiftDefinition{Hours: tt.hours}
			if got := d.HoursTenths(); got != tt.want {
				t.Errorf("HoursTenths() = %d, expected %d", got, tt.want)
			}
		})
	}
}

func TestFormatTenths(t *testing.T) {
	tests := []struct {
		tenths int
		want   string
	}{
		{70, "7.0"},
		{55, "5.5"},
		{5, "0.5"},
		{0, "0.0"},
	}

	for _, tt := range tests {
		if got := FormatTenths(tt.tenths); got != tt.want {
			t.Errorf("FormatTenths(%d) = %s, expected %s", tt.tenths, got, tt.want)
		}
	}
}
