// Package model 定义周排班引擎的核心数据模型
package model

// Staff 员工
// RolesInPreferenceOrder 为按偏好排序的岗位列表，越靠前越偏好；
// 员工只能被分配到该列表中的岗位
type Staff struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	RolesInPreferenceOrder []string `json:"rolesInPreferenceOrder"`
	MinHoursPerWeek        *int     `json:"minHoursPerWeek,omitempty"`
	MaxHoursPerWeek        *int     `json:"maxHoursPerWeek,omitempty"`
}

// QualifiedFor 检查员工是否具备某岗位资格
func (s *Staff) QualifiedFor(role string) bool {
	return s.RoleRank(role) >= 0
}

// RoleRank 返回岗位在员工偏好列表中的序号（0 为最偏好），不具备资格返回 -1
func (s *Staff) RoleRank(role string) int {
	for i, r := range s.RolesInPreferenceOrder {
		if r == role {
			return i
		}
	}
	return -1
}

// Unavailability 员工在某一天内的不可用时间段
// 时间段 end <= start 表示跨午夜延伸到次日凌晨
type Unavailability struct {
	EmployeeID string     `json:"employeeId"`
	DayOfWeek  DayOfWeek  `json:"dayOfWeek"`
	Shifts     []TimeSpan `json:"shifts"`
}
