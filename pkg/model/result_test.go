package model

import (
	"testing"
)

func TestSchedule_AppendAndAssigned(t *testing.T) {
	s := make(Schedule)
	s.Append(Monday, "AM", "Server", "alice")
	s.Append(Monday, "AM", "Server", "bob")

	ids := s.Assigned(Monday, "AM", "Server")
	if len(ids) != 2 || ids[0] != "alice" || ids[1] != "bob" {
		t.Errorf("Assigned() = %v, expected [alice bob]", ids)
	}

	if got := s.Assigned(Tuesday, "AM", "Server"); got != nil {
		t.Errorf("未排班的单元应返回 nil, got %v", got)
	}
}

func TestSchedule_Prune(t *testing.T) {
	s := Schedule{
		Monday: {
			"AM": {"Server": {"alice"}, "Expo": {}},
			"PM": {"Server": {}},
		},
		Tuesday: {
			"AM": {"Server": {}},
		},
	}

	s.Prune()

	if len(s[Monday]["AM"]) != 1 {
		t.Errorf("空岗位应被剪除, got %v", s[Monday]["AM"])
	}
	if _, ok := s[Monday]["PM"]; ok {
		t.Error("空班次应被剪除")
	}
	if _, ok := s[Tuesday]; ok {
		t.Error("空日应被剪除")
	}
}

func TestDayIndex(t *testing.T) {
	if got := DayIndex(Monday); got != 0 {
		t.Errorf("DayIndex(Monday) = %d, expected 0", got)
	}
	if got := DayIndex(Sunday); got != 6 {
		t.Errorf("DayIndex(Sunday) = %d, expected 6", got)
	}
	if got := DayIndex("Someday"); got != -1 {
		t.Errorf("未知标签应返回 -1, got %d", got)
	}
}

func TestNextDay(t *testing.T) {
	if got := NextDay(6); got != 0 {
		t.Errorf("周日的下一天应回到周一, got %d", got)
	}
	if got := NextDay(0); got != 1 {
		t.Errorf("NextDay(0) = %d, expected 1", got)
	}
}
