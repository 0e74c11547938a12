// Package validator 提供请求校验与排班结果验证功能
package validator

import (
	"fmt"

	"github.com/zhoupai/zhoupai/pkg/errors"
	"github.com/zhoupai/zhoupai/pkg/model"
)

// ValidateRequest 校验排班请求的结构与取值
// 求解核心假定输入已通过本校验；校验失败返回字段级错误集合
func ValidateRequest(req *model.ScheduleRequest) *errors.ValidationErrors {
	ve := &errors.ValidationErrors{}

	if len(req.StaffList) == 0 {
		ve.Add("staffList", "员工列表为空")
	}
	if len(req.ShiftDefinitions) == 0 {
		ve.Add("shiftDefinitions", "班次定义缺失")
	}

	staffIDs := make(map[string]bool)
	for i, s := range req.StaffList {
		field := fmt.Sprintf("staffList[%d]", i)
		if s.ID == "" {
			ve.Add(field+".id", "员工 ID 不能为空")
			continue
		}
		if staffIDs[s.ID] {
			ve.Add(field+".id", fmt.Sprintf("员工 ID 重复: %s", s.ID))
		}
		staffIDs[s.ID] = true
		if s.MinHoursPerWeek != nil && *s.MinHoursPerWeek < 0 {
			ve.Add(field+".minHoursPerWeek", "最低周工时不能为负")
		}
		if s.MaxHoursPerWeek != nil && *s.MaxHoursPerWeek < 0 {
			ve.Add(field+".maxHoursPerWeek", "最大周工时不能为负")
		}
		if s.MinHoursPerWeek != nil && s.MaxHoursPerWeek != nil &&
			*s.MinHoursPerWeek > *s.MaxHoursPerWeek {
			ve.Add(field, "最低周工时不能大于最大周工时")
		}
	}

	for name, def := range req.ShiftDefinitions {
		field := fmt.Sprintf("shiftDefinitions[%s]", name)
		if _, err := model.ParseClock(def.Start); err != nil {
			ve.Add(field+".start", err.Error())
		}
		if _, err := model.ParseClock(def.End); err != nil {
			ve.Add(field+".end", err.Error())
		}
		if def.Hours <= 0 {
			ve.Add(field+".hours", "班次工时必须为正数")
		}
	}

	for i, unav := range req.UnavailabilityList {
		field := fmt.Sprintf("unavailabilityList[%d]", i)
		if !staffIDs[unav.EmployeeID] {
			ve.Add(field+".employeeId", fmt.Sprintf("未知的员工 ID: %s", unav.EmployeeID))
		}
		if !model.IsValidDay(unav.DayOfWeek) {
			ve.Add(field+".dayOfWeek", fmt.Sprintf("未知的星期标签: %s", unav.DayOfWeek))
		}
		for j, span := range unav.Shifts {
			spanField := fmt.Sprintf("%s.shifts[%d]", field, j)
			if _, err := model.ParseClock(span.Start); err != nil {
				ve.Add(spanField+".start", err.Error())
			}
			if _, err := model.ParseClock(span.End); err != nil {
				ve.Add(spanField+".end", err.Error())
			}
		}
	}

	for day, dayNeeds := range req.WeeklyNeeds {
		if !model.IsValidDay(day) {
			ve.Add("weeklyNeeds", fmt.Sprintf("未知的星期标签: %s", day))
			continue
		}
		for shift, shiftNeeds := range dayNeeds {
			if _, ok := req.ShiftDefinitions[shift]; !ok {
				ve.Add("weeklyNeeds", fmt.Sprintf("%s 引用了未定义的班次: %s", day, shift))
				continue
			}
			for role, required := range shiftNeeds {
				if required < 0 {
					ve.Add("weeklyNeeds",
						fmt.Sprintf("%s/%s/%s 的需求人数不能为负", day, shift, role))
				}
			}
		}
	}

	if req.ShiftPreference != "" && !model.IsValidShiftPreference(req.ShiftPreference) {
		ve.Add("shiftPreference", fmt.Sprintf("未知的班次偏好: %s", req.ShiftPreference))
	}

	for i, id := range req.StaffPriority {
		if !staffIDs[id] {
			ve.Add(fmt.Sprintf("staffPriority[%d]", i), fmt.Sprintf("未知的员工 ID: %s", id))
		}
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}
