// Package model 定义周排班引擎的核心数据模型
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay 一天的分钟数
const MinutesPerDay = 24 * 60

// ShiftDefinition 班次定义
// Hours 为业务口径的工时，允许一位小数，与 end-start 可以不一致，
// 工时计算以 Hours 为准
type ShiftDefinition struct {
	Start string  `json:"start"` // HH:MM
	End   string  `json:"end"`   // HH:MM
	Hours float64 `json:"hours"`
}

// HoursTenths 返回以 0.1 小时为单位的整数工时
// 内部全部使用十分之一小时的整数运算，避免浮点误差
func (d ShiftDefinition) HoursTenths() int {
	return int(d.Hours*10 + 0.5)
}

// TimeSpan 一段时间（HH:MM 起止），end <= start 表示跨午夜到次日
type TimeSpan struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParseClock 解析 HH:MM 格式时间，返回当天内的分钟数 [0, 1440)
// 不接受 24:00，午夜结束用跨天语义表达
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("时间格式无效（应为 HH:MM）: %q", s)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("时间格式无效: %q", s)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("时间格式无效: %q", s)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("时间超出范围（00:00-23:59）: %q", s)
	}
	return hh*60 + mm, nil
}

// FormatTenths 将十分之一小时的整数格式化为一位小数的小时数
func FormatTenths(tenths int) string {
	return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
}
