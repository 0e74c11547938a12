package validator

import (
	"testing"

	"github.com/zhoupai/zhoupai/pkg/model"
)

func verifyRequest() *model.ScheduleRequest {
	return &model.ScheduleRequest{
		StaffList: []model.Staff{
			{ID: "alice", Name: "Alice", RolesInPreferenceOrder: []string{"Server"}, MaxHoursPerWeek: intPtr(40)},
			{ID: "bob", Name: "Bob", RolesInPreferenceOrder: []string{"Expo"}},
		},
		WeeklyNeeds: model.WeeklyNeeds{
			model.Monday: {"AM": {"Server": 1, "Expo": 1}},
		},
		ShiftDefinitions: map[string]model.ShiftDefinition{
			"AM": {Start: "12:00", End: "19:00", Hours: 7.0},
			"PM": {Start: "19:00", End: "02:00", Hours: 7.0},
		},
	}
}

func TestVerifySchedule_Valid(t *testing.T) {
	schedule := model.Schedule{
		model.Monday: {"AM": {"Server": {"alice"}, "Expo": {"bob"}}},
	}

	if violations := VerifySchedule(verifyRequest(), schedule); len(violations) != 0 {
		t.Errorf("合法排班不应有违规: %v", violations)
	}
}

func TestVerifySchedule_Violations(t *testing.T) {
	tests := []struct {
		name     string
		schedule model.Schedule
		wantType ViolationType
	}{
		{
			"岗位资格不符",
			model.Schedule{model.Monday: {"AM": {"Server": {"bob"}}}},
			ViolationQualification,
		},
		{
			"超过需求人数",
			model.Schedule{model.Monday: {"AM": {"Server": {"alice", "bob"}}}},
			ViolationOverFill,
		},
		{
			"未知员工",
			model.Schedule{model.Monday: {"AM": {"Server": {"ghost"}}}},
			ViolationUnknownStaff,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := VerifySchedule(verifyRequest(), tt.schedule)
			found := false
			for _, v := range violations {
				if v.Type == tt.wantType {
					found = true
				}
			}
			if !found {
				t.Errorf("应检出 %s 违规, got %v", tt.wantType, violations)
			}
		})
	}
}

func TestVerifySchedule_Availability(t *testing.T) {
	req := verifyRequest()
	req.UnavailabilityList = []model.Unavailability{
		{EmployeeID: "alice", DayOfWeek: model.Monday, Shifts: []model.TimeSpan{{Start: "12:00", End: "14:00"}}},
	}
	schedule := model.Schedule{
		model.Monday: {"AM": {"Server": {"alice"}}},
	}

	violations := VerifySchedule(req, schedule)
	found := false
	for _, v := range violations {
		if v.Type == ViolationAvailability {
			found = true
		}
	}
	if !found {
		t.Errorf("应检出不可用时间违规, got %v", violations)
	}
}

func TestVerifySchedule_MaxHours(t *testing.T) {
	req := verifyRequest()
	req.StaffList[0].MaxHoursPerWeek = intPtr(7)
	req.WeeklyNeeds = model.WeeklyNeeds{
		model.Monday:  {"AM": {"Server": 1}},
		model.Tuesday: {"AM": {"Server": 1}},
	}
	schedule := model.Schedule{
		model.Monday:  {"AM": {"Server": {"alice"}}},
		model.Tuesday: {"AM": {"Server": {"alice"}}},
	}

	violations := VerifySchedule(req, schedule)
	found := false
	for _, v := range violations {
		if v.Type == ViolationMaxHours {
			found = true
		}
	}
	if !found {
		t.Errorf("应检出最大工时违规, got %v", violations)
	}
}

func TestVerifyWarnings(t *testing.T) {
	req := verifyRequest()
	schedule := model.Schedule{
		model.Monday: {"AM": {"Server": {"alice"}}},
	}

	// Expo 缺口 1 且有对应警告：一致
	warnings := []string{"Warning: Shortage of 1 for Expo on Monday AM."}
	if violations := VerifyWarnings(req, schedule, warnings); len(violations) != 0 {
		t.Errorf("警告一致时不应有违规: %v", violations)
	}

	// 缺口未被警告：不一致
	if violations := VerifyWarnings(req, schedule, []string{}); len(violations) != 1 {
		t.Errorf("缺口未警告应检出 1 条违规, got %v", violations)
	}
}
