// Package stats 提供排班统计分析功能
package stats

import (
	"github.com/zhoupai/zhoupai/pkg/model"
)

// CoverageMetrics 覆盖率指标
type CoverageMetrics struct {
	TotalRequired   int     `json:"total_required"`   // 总需求人次
	TotalAssigned   int     `json:"total_assigned"`   // 已分配人次
	OverallCoverage float64 `json:"overall_coverage"` // 整体覆盖率 (%)
	TotalShortage   int     `json:"total_shortage"`   // 总缺口人次

	DailyCoverage map[string]DayCoverage `json:"daily_coverage"` // 每日覆盖情况
	StaffHours    map[string]float64     `json:"staff_hours"`    // 每名员工的总工时
}

// DayCoverage 每日覆盖情况
type DayCoverage struct {
	Day          string  `json:"day"`
	Required     int     `json:"required"`
	Assigned     int     `json:"assigned"`
	CoverageRate float64 `json:"coverage_rate"`
}

// CalculateCoverage 基于请求与排班结果计算覆盖率指标
func CalculateCoverage(req *model.ScheduleRequest, schedule model.Schedule) *CoverageMetrics {
	m := &CoverageMetrics{
		DailyCoverage: make(map[string]DayCoverage),
		StaffHours:    make(map[string]float64),
	}

	for day, dayNeeds := range req.WeeklyNeeds {
		dc := DayCoverage{Day: string(day)}
		for shift, shiftNeeds := range dayNeeds {
			for role, required := range shiftNeeds {
				if required <= 0 {
					continue
				}
				assigned := len(schedule.Assigned(day, shift, role))
				dc.Required += required
				dc.Assigned += assigned
			}
		}
		if dc.Required == 0 {
			continue
		}
		dc.CoverageRate = 100 * float64(dc.Assigned) / float64(dc.Required)
		m.DailyCoverage[string(day)] = dc
		m.TotalRequired += dc.Required
		m.TotalAssigned += dc.Assigned
	}

	m.TotalShortage = m.TotalRequired - m.TotalAssigned
	if m.TotalRequired > 0 {
		m.OverallCoverage = 100 * float64(m.TotalAssigned) / float64(m.TotalRequired)
	}

	// 工时按十分之一小时整数累加，最后一次性换算为小时
	tenths := make(map[string]int)
	for _, dayPlan := range schedule {
		for shift, shiftPlan := range dayPlan {
			def, ok := req.ShiftDefinitions[shift]
			if !ok {
				continue
			}
			for _, ids := range shiftPlan {
				for _, id := range ids {
					tenths[id] += def.HoursTenths()
				}
			}
		}
	}
	for id, t := range tenths {
		m.StaffHours[id] = float64(t) / 10
	}

	return m
}
