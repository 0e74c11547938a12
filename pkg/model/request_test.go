package model

import (
	"testing"
)

func TestScheduleRequest_Preference(t *testing.T) {
	req := &ScheduleRequest{}
	if got := req.Preference(); got != PrioritizeFullDays {
		t.Errorf("缺省偏好应为优先整天班, got %s", got)
	}

	req.ShiftPreference = PrioritizeHalfDays
	if got := req.Preference(); got != PrioritizeHalfDays {
		t.Errorf("Preference() = %s, expected %s", got, PrioritizeHalfDays)
	}
}

func TestWeeklyNeeds_Required(t *testing.T) {
	needs := WeeklyNeeds{
		Monday: {"AM": {"Server": 2}},
	}

	if got := needs.Required(Monday, "AM", "Server"); got != 2 {
		t.Errorf("Required() = %d, expected 2", got)
	}
	if got := needs.Required(Monday, "AM", "Expo"); got != 0 {
		t.Errorf("缺失的岗位需求应为 0, got %d", got)
	}
	if got := needs.Required(Friday, "AM", "Server"); got != 0 {
		t.Errorf("缺失的日需求应为 0, got %d", got)
	}
}

func TestStaff_RoleRank(t *testing.T) {
	s := &Staff{RolesInPreferenceOrder: []string{"Expo", "Server"}}

	if got := s.RoleRank("Expo"); got != 0 {
		t.Errorf("最偏好岗位序号应为 0, got %d", got)
	}
	if got := s.RoleRank("Server"); got != 1 {
		t.Errorf("RoleRank(Server) = %d, expected 1", got)
	}
	if got := s.RoleRank("Cashier"); got != -1 {
		t.Errorf("不具备资格的岗位应返回 -1, got %d", got)
	}
	if s.QualifiedFor("Cashier") {
		t.Error("不应具备 Cashier 资格")
	}
}
