package solver

import (
	"testing"

	"github.com/zhoupai/zhoupai/pkg/model"
)

// twoShiftRequest 餐厅常见的早晚两班配置，晚班跨午夜
func twoShiftRequest(staff []model.Staff) *model.ScheduleRequest {
	return &model.ScheduleRequest{
		StaffList: staff,
		ShiftDefinitions: map[string]model.ShiftDefinition{
			"AM": {Start: "12:00", End: "19:00", Hours: 7.0},
			"PM": {Start: "19:00", End: "02:00", Hours: 7.0},
		},
	}
}

func TestNormalize_CrossDayUnavailability(t *testing.T) {
	req := twoShiftRequest([]model.Staff{
		{ID: "bob", Name: "Bob", RolesInPreferenceOrder: []string{"Server"}},
	})
	req.UnavailabilityList = []model.Unavailability{
		{EmployeeID: "bob", DayOfWeek: model.Sunday, Shifts: []model.TimeSpan{{Start: "22:00", End: "23:59"}}},
		{EmployeeID: "bob", DayOfWeek: model.Monday, Shifts: []model.TimeSpan{{Start: "00:00", End: "03:00"}}},
	}

	p, err := normalize(req)
	if err != nil {
		t.Fatalf("normalize 返回错误: %v", err)
	}

	// 周日晚班：周日 22:00-23:59 与班次当日段重叠，
	// 且周一 00:00-03:00 与班次跨入周一的凌晨段重叠
	if p.available("bob", model.DayIndex(model.Sunday), "PM") {
		t.Error("周日晚班应不可用")
	}

	// 周一晚班：不可用时间只落在周一凌晨，晚班从周一 19:00 开始
	if !p.available("bob", model.DayIndex(model.Monday), "PM") {
		t.Error("周一晚班应可用")
	}
}

func TestNormalize_PointTouchIsNotOverlap(t *testing.T) {
	req := twoShiftRequest([]model.Staff{
		{ID: "amy", Name: "Amy", RolesInPreferenceOrder: []string{"Server"}},
	})
	// 不可用时间恰好在班次开始时刻结束：半开区间不算重叠
	req.UnavailabilityList = []model.Unavailability{
		{EmployeeID: "amy", DayOfWeek: model.Monday, Shifts: []model.TimeSpan{{Start: "09:00", End: "12:00"}}},
	}

	p, err := normalize(req)
	if err != nil {
		t.Fatalf("normalize 返回错误: %v", err)
	}
	if !p.available("amy", 0, "AM") {
		t.Error("端点相接不应视为重叠")
	}
}

func TestNormalize_ZeroLengthIntervalIsNoOp(t *testing.T) {
	req := twoShiftRequest([]model.Staff{
		{ID: "amy", Name: "Amy", RolesInPreferenceOrder: []string{"Server"}},
	})
	req.UnavailabilityList = []model.Unavailability{
		{EmployeeID: "amy", DayOfWeek: model.Monday, Shifts: []model.TimeSpan{{Start: "13:00", End: "13:00"}}},
	}

	p, err := normalize(req)
	if err != nil {
		t.Fatalf("normalize 返回错误: %v", err)
	}
	if !p.available("amy", 0, "AM") {
		t.Error("零长度不可用时间段应为空操作")
	}
}

func TestNormalize_WrappedUnavailability(t *testing.T) {
	req := twoShiftRequest([]model.Staff{
		{ID: "amy", Name: "Amy", RolesInPreferenceOrder: []string{"Server"}},
	})
	// 周六 23:00 跨到周日 13:00，周日早班 12:00 开始应被挡住
	req.UnavailabilityList = []model.Unavailability{
		{EmployeeID: "amy", DayOfWeek: model.Saturday, Shifts: []model.TimeSpan{{Start: "23:00", End: "13:00"}}},
	}

	p, err := normalize(req)
	if err != nil {
		t.Fatalf("normalize 返回错误: %v", err)
	}
	if p.available("amy", model.DayIndex(model.Sunday), "AM") {
		t.Error("跨午夜不可用时间应挡住次日早班")
	}
	if p.available("amy", model.DayIndex(model.Saturday), "PM") {
		t.Error("跨午夜不可用时间应挡住当日晚班")
	}
}

func TestNormalize_ActiveRolesAndDemand(t *testing.T) {
	req := twoShiftRequest([]model.Staff{
		{ID: "amy", Name: "Amy", RolesInPreferenceOrder: []string{"Server"}},
	})
	req.WeeklyNeeds = model.WeeklyNeeds{
		model.Monday: {
			"AM": {"Expo": 1, "Server": 0},
		},
	}

	p, err := normalize(req)
	if err != nil {
		t.Fatalf("normalize 返回错误: %v", err)
	}

	// 需求引用但无人具备资格的岗位保留（用于缺口报告）
	if len(p.roles) != 2 || p.roles[0] != "Expo" || p.roles[1] != "Server" {
		t.Errorf("活跃岗位 = %v, expected [Expo Server]", p.roles)
	}

	// 需求为 0 的单元视为不存在
	if _, ok := p.demand[cellKey{day: 0, shift: "AM", role: "Server"}]; ok {
		t.Error("需求为 0 的单元不应保留")
	}
	if p.demand[cellKey{day: 0, shift: "AM", role: "Expo"}] != 1 {
		t.Error("Expo 需求应保留")
	}
}

func TestNormalize_ConsecutivePairs(t *testing.T) {
	req := twoShiftRequest(nil)

	p, err := normalize(req)
	if err != nil {
		t.Fatalf("normalize 返回错误: %v", err)
	}

	if len(p.pairs) != 1 {
		t.Fatalf("连班对数量 = %d, expected 1", len(p.pairs))
	}
	if p.pairs[0].first != "AM" || p.pairs[0].second != "PM" {
		t.Errorf("连班对 = %+v, expected AM->PM", p.pairs[0])
	}
}

func TestNormalize_GapIsNotConsecutive(t *testing.T) {
	req := &model.ScheduleRequest{
		ShiftDefinitions: map[string]model.ShiftDefinition{
			"AM": {Start: "10:00", End: "14:00", Hours: 4.0},
			"PM": {Start: "17:00", End: "21:00", Hours: 4.0},
		},
	}

	p, err := normalize(req)
	if err != nil {
		t.Fatalf("normalize 返回错误: %v", err)
	}
	if len(p.pairs) != 0 {
		t.Errorf("有间隔的班次不应构成连班对, got %+v", p.pairs)
	}
}
