// Package solver 提供基于 CP-SAT 的周排班求解器
package solver

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/zhoupai/zhoupai/pkg/model"
)

// addHardConstraints 向模型添加全部硬约束
// 可用性与岗位资格由变量裁剪在结构上保证，无需显式约束
func addHardConstraints(b *cpmodel.Builder, p *problem, v *variables) {
	addSingleRolePerShift(b, p, v)
	addMaxWeeklyHours(b, p, v)
	addDemandLinking(b, p, v)
	addMinHourLinking(b, p, v)
}

// addSingleRolePerShift 同一员工在同一（日，班次）槽位最多担任一个岗位
func addSingleRolePerShift(b *cpmodel.Builder, p *problem, v *variables) {
	for i := range p.staff {
		staffID := p.staff[i].ID
		for day := 0; day < len(model.DaysOfWeek); day++ {
			for _, shift := range p.shiftNames {
				vars := v.staffSlotVars(p, staffID, day, shift)
				if len(vars) > 1 {
					b.AddLessOrEqual(sumOf(vars), cpmodel.NewConstant(1))
				}
			}
		}
	}
}

// addMaxWeeklyHours 每周最大工时（0.1 小时整数运算）
func addMaxWeeklyHours(b *cpmodel.Builder, p *problem, v *variables) {
	for i := range p.staff {
		s := &p.staff[i]
		if s.MaxHoursPerWeek == nil {
			continue
		}
		vars, shifts := v.staffVars(p, s.ID)
		if len(vars) == 0 {
			continue
		}
		hours := cpmodel.NewLinearExpr()
		for j, bv := range vars {
			hours.AddTerm(bv, int64(p.hoursTenths[shifts[j]]))
		}
		b.AddLessOrEqual(hours, cpmodel.NewConstant(int64(*s.MaxHoursPerWeek)*10))
	}
}

// addDemandLinking 需求缺口联动
// 分配数加缺口不低于需求，且分配数不超过需求（不超配）
func addDemandLinking(b *cpmodel.Builder, p *problem, v *variables) {
	for _, cell := range p.cells() {
		required := int64(p.demand[cell])
		assigned := sumOf(v.cellVars(p, cell))
		withShortage := cpmodel.NewLinearExpr()
		for _, bv := range v.cellVars(p, cell) {
			withShortage.Add(bv)
		}
		withShortage.Add(v.shortage[cell])
		b.AddGreaterOrEqual(withShortage, cpmodel.NewConstant(required))
		b.AddLessOrEqual(assigned, cpmodel.NewConstant(required))
	}
}

// addMinHourLinking 最低周工时缺口联动：H_s + minShort >= min*10
func addMinHourLinking(b *cpmodel.Builder, p *problem, v *variables) {
	for i := range p.staff {
		s := &p.staff[i]
		shortVar, ok := v.minShort[s.ID]
		if !ok {
			continue
		}
		target := int64(*s.MinHoursPerWeek) * 10
		vars, shifts := v.staffVars(p, s.ID)
		expr := cpmodel.NewLinearExpr()
		for j, bv := range vars {
			expr.AddTerm(bv, int64(p.hoursTenths[shifts[j]]))
		}
		expr.Add(shortVar)
		b.AddGreaterOrEqual(expr, cpmodel.NewConstant(target))
	}
}
