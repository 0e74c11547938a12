// Package solver 提供基于 CP-SAT 的周排班求解器
package solver

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/zhoupai/zhoupai/pkg/model"
)

// assignKey （员工，日，班次，岗位）分配变量键
type assignKey struct {
	staffID string
	day     int
	shift   string
	role    string
}

// variables 决策变量表
// 分配变量只为可行元组创建：员工具备岗位资格且槽位可用，
// 且该单元有需求；其余组合隐式为 0
type variables struct {
	assign   map[assignKey]cpmodel.BoolVar
	shortage map[cellKey]cpmodel.IntVar
	minShort map[string]cpmodel.IntVar
}

// buildVariables 按规范化问题实例化决策变量
func buildVariables(b *cpmodel.Builder, p *problem) *variables {
	v := &variables{
		assign:   make(map[assignKey]cpmodel.BoolVar),
		shortage: make(map[cellKey]cpmodel.IntVar),
		minShort: make(map[string]cpmodel.IntVar),
	}

	for _, cell := range p.cells() {
		required := p.demand[cell]
		for i := range p.staff {
			s := &p.staff[i]
			if !s.QualifiedFor(cell.role) {
				continue
			}
			if !p.available(s.ID, cell.day, cell.shift) {
				continue
			}
			key := assignKey{staffID: s.ID, day: cell.day, shift: cell.shift, role: cell.role}
			v.assign[key] = b.NewBoolVar()
		}
		v.shortage[cell] = b.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(required)))
	}

	for i := range p.staff {
		s := &p.staff[i]
		if s.MinHoursPerWeek == nil || *s.MinHoursPerWeek <= 0 {
			continue
		}
		target := int64(*s.MinHoursPerWeek) * 10
		v.minShort[s.ID] = b.NewIntVarFromDomain(cpmodel.NewDomain(0, target))
	}

	return v
}

// staffSlotVars 返回员工在某槽位上所有岗位的分配变量（确定顺序）
func (v *variables) staffSlotVars(p *problem, staffID string, day int, shift string) []cpmodel.BoolVar {
	var out []cpmodel.BoolVar
	for _, role := range p.roles {
		if bv, ok := v.assign[assignKey{staffID: staffID, day: day, shift: shift, role: role}]; ok {
			out = append(out, bv)
		}
	}
	return out
}

// cellVars 返回某需求单元上所有员工的分配变量（员工输入顺序）
func (v *variables) cellVars(p *problem, cell cellKey) []cpmodel.BoolVar {
	var out []cpmodel.BoolVar
	for i := range p.staff {
		key := assignKey{staffID: p.staff[i].ID, day: cell.day, shift: cell.shift, role: cell.role}
		if bv, ok := v.assign[key]; ok {
			out = append(out, bv)
		}
	}
	return out
}

// staffVars 返回员工的全部分配变量及对应班次（确定顺序）
func (v *variables) staffVars(p *problem, staffID string) ([]cpmodel.BoolVar, []string) {
	var vars []cpmodel.BoolVar
	var shifts []string
	for day := 0; day < len(model.DaysOfWeek); day++ {
		for _, shift := range p.shiftNames {
			for _, role := range p.roles {
				key := assignKey{staffID: staffID, day: day, shift: shift, role: role}
				if bv, ok := v.assign[key]; ok {
					vars = append(vars, bv)
					shifts = append(shifts, shift)
				}
			}
		}
	}
	return vars, shifts
}

// sumOf 构造布尔变量之和的线性表达式
func sumOf(vars []cpmodel.BoolVar) *cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	for _, bv := range vars {
		expr.Add(bv)
	}
	return expr
}
