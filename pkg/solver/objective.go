// Package solver 提供基于 CP-SAT 的周排班求解器
package solver

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/zhoupai/zhoupai/pkg/model"
)

// 目标权重：相邻层级之间的差距大于低层级项在目标规模下的最大值，
// 单个加权和即可保证严格的字典序优先级
const (
	weightDemandShortage  = 10000 // 一级：需求缺口
	weightMinHourShortage = 2000  // 二级：最低周工时缺口（0.1 小时）
	weightShiftPreference = 100   // 三级：班次偏好
	weightStaffPriority   = 20    // 四级：员工优先级
	weightRolePreference  = 10    // 五级：岗位偏好
)

// buildObjective 构建五级加权最小化目标
func buildObjective(b *cpmodel.Builder, p *problem, v *variables, req *model.ScheduleRequest) {
	obj := cpmodel.NewLinearExpr()

	// 一级：需求缺口总和
	for _, cell := range p.cells() {
		obj.AddTerm(v.shortage[cell], weightDemandShortage)
	}

	// 二级：最低周工时缺口总和
	for i := range p.staff {
		if shortVar, ok := v.minShort[p.staff[i].ID]; ok {
			obj.AddTerm(shortVar, weightMinHourShortage)
		}
	}

	// 三级：班次偏好
	addShiftPreferenceTerm(b, p, v, req.Preference(), obj)

	// 四级：员工优先级
	addStaffPriorityTerm(p, v, req.StaffPriority, obj)

	// 五级：岗位偏好（偏好序号越小惩罚越低）
	for key, bv := range v.assign {
		s := findStaff(p, key.staffID)
		if s == nil {
			continue
		}
		rank := s.RoleRank(key.role)
		if rank > 0 {
			obj.AddTerm(bv, int64(rank)*weightRolePreference)
		}
	}

	b.Minimize(obj)
}

// addShiftPreferenceTerm 班次偏好项
// 对每个员工、每天、每个连班对引入整天指示变量 full：
// full <= worksA, full <= worksB, full >= worksA + worksB - 1。
// FullDay 模式惩罚半天单班数 worksA + worksB - 2*full；
// HalfDay 模式惩罚整天数 full；None 不产生任何项
func addShiftPreferenceTerm(b *cpmodel.Builder, p *problem, v *variables, pref model.ShiftPreference, obj *cpmodel.LinearExpr) {
	if pref == model.PreferenceNone {
		return
	}
	for i := range p.staff {
		staffID := p.staff[i].ID
		for day := 0; day < len(model.DaysOfWeek); day++ {
			for _, pair := range p.pairs {
				varsA := v.staffSlotVars(p, staffID, day, pair.first)
				varsB := v.staffSlotVars(p, staffID, day, pair.second)
				if len(varsA) == 0 || len(varsB) == 0 {
					continue
				}
				worksA := sumOf(varsA)
				worksB := sumOf(varsB)
				full := b.NewBoolVar()
				b.AddLessOrEqual(full, worksA)
				b.AddLessOrEqual(full, worksB)
				both := cpmodel.NewLinearExpr()
				for _, bv := range varsA {
					both.Add(bv)
				}
				for _, bv := range varsB {
					both.Add(bv)
				}
				fullPlusOne := cpmodel.NewLinearExpr().Add(full).AddConstant(1)
				b.AddGreaterOrEqual(fullPlusOne, both)

				switch pref {
				case model.PrioritizeFullDays:
					for _, bv := range varsA {
						obj.AddTerm(bv, weightShiftPreference)
					}
					for _, bv := range varsB {
						obj.AddTerm(bv, weightShiftPreference)
					}
					obj.AddTerm(full, -2*weightShiftPreference)
				case model.PrioritizeHalfDays:
					obj.AddTerm(full, weightShiftPreference)
				}
			}
		}
	}
}

// addStaffPriorityTerm 员工优先级项
// 列表中第 i 位（0 起）员工系数为 k-i，对"未被排班"施加惩罚：
// coeff * (可排班次数 - 实际班次数)，常数项不影响最优解选择
func addStaffPriorityTerm(p *problem, v *variables, priority []string, obj *cpmodel.LinearExpr) {
	k := len(priority)
	for idx, staffID := range priority {
		coeff := int64(k - idx)
		vars, _ := v.staffVars(p, staffID)
		if len(vars) == 0 {
			continue
		}
		possible := make(map[slotKey]bool)
		for key := range v.assign {
			if key.staffID == staffID {
				possible[slotKey{day: key.day, shift: key.shift}] = true
			}
		}
		obj.AddConstant(coeff * weightStaffPriority * int64(len(possible)))
		for _, bv := range vars {
			obj.AddTerm(bv, -coeff*weightStaffPriority)
		}
	}
}

// findStaff 按 ID 在问题中查找员工
func findStaff(p *problem, id string) *model.Staff {
	for i := range p.staff {
		if p.staff[i].ID == id {
			return &p.staff[i]
		}
	}
	return nil
}
