// Package validator 提供请求校验与排班结果验证功能
package validator

import (
	"fmt"
	"strings"

	"github.com/zhoupai/zhoupai/pkg/model"
)

// ViolationType 违规类型
type ViolationType string

const (
	ViolationDoubleBooking ViolationType = "double_booking" // 同一槽位重复排班
	ViolationQualification ViolationType = "qualification"  // 岗位资格不符
	ViolationAvailability  ViolationType = "availability"   // 不可用时间被排班
	ViolationMaxHours      ViolationType = "max_hours"      // 超过最大周工时
	ViolationOverFill      ViolationType = "over_fill"      // 超过需求人数
	ViolationUnknownStaff  ViolationType = "unknown_staff"  // 未知员工出现在排班中
	ViolationWarningGap    ViolationType = "warning_gap"    // 缺口未被警告
)

// Violation 违规信息
type Violation struct {
	Type    ViolationType `json:"type"`
	StaffID string        `json:"staff_id,omitempty"`
	Day     string        `json:"day,omitempty"`
	Shift   string        `json:"shift,omitempty"`
	Role    string        `json:"role,omitempty"`
	Message string        `json:"message"`
}

// VerifySchedule 独立重算排班结果是否满足全部硬性不变量
// 与求解器不共享任何推导逻辑，作为纵深防御使用
func VerifySchedule(req *model.ScheduleRequest, schedule model.Schedule) []Violation {
	var violations []Violation

	staffMap := make(map[string]*model.Staff)
	for i := range req.StaffList {
		staffMap[req.StaffList[i].ID] = &req.StaffList[i]
	}

	hoursTenths := make(map[string]int)
	totalTenths := make(map[string]int)

	for day, dayPlan := range schedule {
		dIdx := model.DayIndex(day)
		for shift, shiftPlan := range dayPlan {
			seen := make(map[string]int)
			for role, ids := range shiftPlan {
				// 不超配检查
				required := req.WeeklyNeeds.Required(day, shift, role)
				if len(ids) > required {
					violations = append(violations, Violation{
						Type: ViolationOverFill, Day: string(day), Shift: shift, Role: role,
						Message: fmt.Sprintf("%s %s %s 分配 %d 人，超过需求 %d", day, shift, role, len(ids), required),
					})
				}
				for _, id := range ids {
					seen[id]++
					s, ok := staffMap[id]
					if !ok {
						violations = append(violations, Violation{
							Type: ViolationUnknownStaff, StaffID: id, Day: string(day), Shift: shift,
							Message: fmt.Sprintf("排班中出现未知员工 %s", id),
						})
						continue
					}
					if !s.QualifiedFor(role) {
						violations = append(violations, Violation{
							Type: ViolationQualification, StaffID: id, Day: string(day), Shift: shift, Role: role,
							Message: fmt.Sprintf("员工 %s 不具备岗位 %s 的资格", id, role),
						})
					}
					if def, ok := req.ShiftDefinitions[shift]; ok {
						if dIdx >= 0 && isBlocked(req, id, dIdx, def) {
							violations = append(violations, Violation{
								Type: ViolationAvailability, StaffID: id, Day: string(day), Shift: shift,
								Message: fmt.Sprintf("员工 %s 在 %s %s 不可用", id, day, shift),
							})
						}
						if _, ok := hoursTenths[shift]; !ok {
							hoursTenths[shift] = def.HoursTenths()
						}
					}
				}
			}
			// 同槽位单岗位检查
			for id, count := range seen {
				if count > 1 {
					violations = append(violations, Violation{
						Type: ViolationDoubleBooking, StaffID: id, Day: string(day), Shift: shift,
						Message: fmt.Sprintf("员工 %s 在 %s %s 被分配到 %d 个岗位", id, day, shift, count),
					})
				}
				totalTenths[id] += hoursTenths[shift]
			}
		}
	}

	// 最大周工时检查
	for i := range req.StaffList {
		s := &req.StaffList[i]
		if s.MaxHoursPerWeek == nil {
			continue
		}
		if totalTenths[s.ID] > *s.MaxHoursPerWeek*10 {
			violations = append(violations, Violation{
				Type: ViolationMaxHours, StaffID: s.ID,
				Message: fmt.Sprintf("员工 %s 总工时 %s 小时，超过上限 %d 小时",
					s.ID, model.FormatTenths(totalTenths[s.ID]), *s.MaxHoursPerWeek),
			})
		}
	}

	return violations
}

// VerifyWarnings 检查缺口警告与排班结果的数量关系是否一致
// 每个缺员的需求单元都应有一条警告，其缺口数等于需求减实际分配；
// 不检查针对未缺员单元的多余警告
func VerifyWarnings(req *model.ScheduleRequest, schedule model.Schedule, warnings []string) []Violation {
	var violations []Violation
	for day, dayNeeds := range req.WeeklyNeeds {
		for shift, shiftNeeds := range dayNeeds {
			for role, required := range shiftNeeds {
				if required <= 0 {
					continue
				}
				assigned := len(schedule.Assigned(day, shift, role))
				gap := required - assigned
				if gap <= 0 {
					continue
				}
				want := fmt.Sprintf("Shortage of %d for %s on %s %s", gap, role, day, shift)
				found := false
				for _, w := range warnings {
					if strings.Contains(w, want) {
						found = true
						break
					}
				}
				if !found {
					violations = append(violations, Violation{
						Type: ViolationWarningGap, Day: string(day), Shift: shift, Role: role,
						Message: fmt.Sprintf("%s %s %s 缺口 %d 未出现在警告中", day, shift, role, gap),
					})
				}
			}
		}
	}
	return violations
}

// isBlocked 员工的不可用时间是否与班次占用时间重叠（半开区间，支持跨午夜）
func isBlocked(req *model.ScheduleRequest, staffID string, dayIdx int, def model.ShiftDefinition) bool {
	shiftSegs := expand(dayIdx, def.Start, def.End, true)
	for _, unav := range req.UnavailabilityList {
		if unav.EmployeeID != staffID {
			continue
		}
		uIdx := model.DayIndex(unav.DayOfWeek)
		if uIdx < 0 {
			continue
		}
		for _, span := range unav.Shifts {
			for _, useg := range expand(uIdx, span.Start, span.End, false) {
				for _, sseg := range shiftSegs {
					if useg[0] == sseg[0] && useg[1] < sseg[2] && sseg[1] < useg[2] {
						return true
					}
				}
			}
		}
	}
	return false
}

// expand 将（日，起，止）展开为 [day, start, end) 三元组列表
// wrapOnEqual 控制 start == end 时按跨天（班次）还是空区间（不可用段）处理
func expand(dayIdx int, startStr, endStr string, wrapOnEqual bool) [][3]int {
	start, err1 := model.ParseClock(startStr)
	end, err2 := model.ParseClock(endStr)
	if err1 != nil || err2 != nil {
		return nil
	}
	if start == end && !wrapOnEqual {
		return nil
	}
	if end <= start {
		return [][3]int{
			{dayIdx, start, model.MinutesPerDay},
			{model.NextDay(dayIdx), 0, end},
		}
	}
	return [][3]int{{dayIdx, start, end}}
}
