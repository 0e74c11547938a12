// Package solver 提供基于 CP-SAT 的周排班求解器
//
// 求解是纯同步调用：每次调用独立构建模型与求解器，
// 结束后全部状态随结果释放，多个并发调用互不影响
package solver

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"

	"github.com/zhoupai/zhoupai/pkg/logger"
	"github.com/zhoupai/zhoupai/pkg/model"
)

// DefaultTimeLimit 默认求解时间上限
const DefaultTimeLimit = 180 * time.Second

// Options 求解选项
type Options struct {
	// TimeLimit 墙钟时间上限，到期后返回当前最优可行解（若有）
	TimeLimit time.Duration
	// NumWorkers 求解器内部工作线程数，0 表示使用求解器默认值
	NumWorkers int
}

// DefaultOptions 返回默认求解选项
func DefaultOptions() Options {
	return Options{TimeLimit: DefaultTimeLimit}
}

// Solve 使用默认选项求解周排班问题
func Solve(req *model.ScheduleRequest) *model.SolveResult {
	return SolveWithOptions(req, DefaultOptions())
}

// SolveWithOptions 求解周排班问题
// 输入假定已通过外部校验；返回结构化结果而非错误值
func SolveWithOptions(req *model.ScheduleRequest, opts Options) *model.SolveResult {
	start := time.Now()
	log := logger.NewSolverLogger()

	p, err := normalize(req)
	if err != nil {
		return errorResult(start, fmt.Sprintf("输入规范化失败: %v", err))
	}
	log.StartSolve(len(p.staff), len(p.demand), string(req.Preference()))

	b := cpmodel.NewCpModelBuilder()
	v := buildVariables(b, p)
	addHardConstraints(b, p, v)
	buildObjective(b, p, v, req)

	m, err := b.Model()
	if err != nil {
		return errorResult(start, fmt.Sprintf("排班模型构建失败: %v", err))
	}

	if opts.TimeLimit <= 0 {
		opts.TimeLimit = DefaultTimeLimit
	}
	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(opts.TimeLimit.Seconds()),
	}
	if opts.NumWorkers > 0 {
		params.NumWorkers = proto.Int32(int32(opts.NumWorkers))
	}

	response, err := cpmodel.SolveCpModelWithParameters(m, params)
	if err != nil {
		return errorResult(start, fmt.Sprintf("求解器执行失败: %v", err))
	}

	status := response.GetStatus()
	elapsed := time.Since(start)
	log.SolveComplete(status.String(), elapsed)

	switch status {
	case cmpb.CpSolverStatus_OPTIMAL, cmpb.CpSolverStatus_FEASIBLE:
		return extractSolution(p, v, response, start, log)
	case cmpb.CpSolverStatus_INFEASIBLE:
		return &model.SolveResult{
			Kind:              model.ResultInfeasible,
			Message:           "硬约束冲突（如不可用时间、最大工时），无法生成任何排班",
			CalculationTimeMs: elapsed.Milliseconds(),
		}
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return errorResult(start, "排班模型定义无效")
	default:
		return &model.SolveResult{
			Kind:              model.ResultInfeasible,
			Message:           fmt.Sprintf("时间上限内未找到可行解（状态: %s），可尝试延长求解时间", status.String()),
			CalculationTimeMs: elapsed.Milliseconds(),
		}
	}
}

// extractSolution 从求解器响应中装配排班结果与警告
func extractSolution(p *problem, v *variables, response *cmpb.CpSolverResponse, start time.Time, log *logger.SolverLogger) *model.SolveResult {
	schedule := make(model.Schedule)
	assignedTenths := make(map[string]int)
	totalAssigned := 0

	for _, cell := range p.cells() {
		day := model.DaysOfWeek[cell.day]
		for i := range p.staff {
			staffID := p.staff[i].ID
			key := assignKey{staffID: staffID, day: cell.day, shift: cell.shift, role: cell.role}
			bv, ok := v.assign[key]
			if !ok {
				continue
			}
			if cpmodel.SolutionBooleanValue(response, bv) {
				schedule.Append(day, cell.shift, cell.role, staffID)
				assignedTenths[staffID] += p.hoursTenths[cell.shift]
				totalAssigned++
			}
		}
	}

	// 有员工、有需求却一个班都排不出来，对调用方而言等同于硬约束冲突
	if totalAssigned == 0 && len(p.demand) > 0 && len(p.staff) > 0 {
		return &model.SolveResult{
			Kind:              model.ResultInfeasible,
			Message:           "硬约束冲突（如不可用时间、最大工时），无法生成任何排班",
			CalculationTimeMs: time.Since(start).Milliseconds(),
		}
	}

	var warnings []string

	// 需求缺口警告（日序 -> 班次 -> 岗位，顺序确定）
	for _, cell := range p.cells() {
		shortage := cpmodel.SolutionIntegerValue(response, v.shortage[cell])
		if shortage > 0 {
			day := model.DaysOfWeek[cell.day]
			msg := fmt.Sprintf("Warning: Shortage of %d for %s on %s %s.", shortage, cell.role, day, cell.shift)
			warnings = append(warnings, msg)
			log.Shortage(string(day), cell.shift, cell.role, int(shortage))
		}
	}

	// 最低周工时警告（员工输入顺序）
	for i := range p.staff {
		s := &p.staff[i]
		if s.MinHoursPerWeek == nil || *s.MinHoursPerWeek <= 0 {
			continue
		}
		target := *s.MinHoursPerWeek * 10
		achieved := assignedTenths[s.ID]
		if achieved < target {
			warnings = append(warnings, fmt.Sprintf(
				"Warning: Staff %s scheduled for %sh, below minimum %dh (short %sh).",
				s.Name, model.FormatTenths(achieved), *s.MinHoursPerWeek, model.FormatTenths(target-achieved)))
		}
	}

	schedule.Prune()

	return &model.SolveResult{
		Kind:              model.ResultSuccess,
		Schedule:          schedule,
		Warnings:          warnings,
		CalculationTimeMs: time.Since(start).Milliseconds(),
	}
}

// errorResult 构造内部错误结果
func errorResult(start time.Time, message string) *model.SolveResult {
	return &model.SolveResult{
		Kind:              model.ResultError,
		Message:           message,
		CalculationTimeMs: time.Since(start).Milliseconds(),
	}
}
