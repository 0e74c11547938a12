// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/zhoupai/zhoupai/internal/metrics"
	"github.com/zhoupai/zhoupai/pkg/errors"
	"github.com/zhoupai/zhoupai/pkg/logger"
	"github.com/zhoupai/zhoupai/pkg/model"
	"github.com/zhoupai/zhoupai/pkg/solver"
	"github.com/zhoupai/zhoupai/pkg/stats"
	"github.com/zhoupai/zhoupai/pkg/validator"
)

// ScheduleHandler 排班处理器
type ScheduleHandler struct {
	opts solver.Options
}

// NewScheduleHandler 创建排班处理器
func NewScheduleHandler(opts solver.Options) *ScheduleHandler {
	return &ScheduleHandler{opts: opts}
}

// GenerateResponse 排班生成响应
type GenerateResponse struct {
	Success           bool                   `json:"success"`
	Schedule          model.Schedule         `json:"schedule,omitempty"`
	Warnings          []string               `json:"warnings"`
	Message           string                 `json:"message,omitempty"`
	CalculationTimeMs int64                  `json:"calculationTimeMs"`
	Statistics        *stats.CoverageMetrics `json:"statistics,omitempty"`
}

// Generate 生成周排班
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req model.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	if ve := validator.ValidateRequest(&req); ve != nil {
		respondError(w, ve.ToAppError())
		return
	}

	start := time.Now()
	result := solver.SolveWithOptions(&req, h.opts)
	metrics.RecordSolve(string(result.Kind), time.Since(start))

	switch result.Kind {
	case model.ResultSuccess:
		coverage := stats.CalculateCoverage(&req, result.Schedule)
		metrics.SetShortageTotal(coverage.TotalShortage)
		metrics.SetCoverageRate(coverage.OverallCoverage)
		respondJSON(w, http.StatusOK, GenerateResponse{
			Success:           true,
			Schedule:          result.Schedule,
			Warnings:          nonNilWarnings(result.Warnings),
			CalculationTimeMs: result.CalculationTimeMs,
			Statistics:        coverage,
		})
	case model.ResultInfeasible:
		respondJSON(w, http.StatusUnprocessableEntity, GenerateResponse{
			Success:           false,
			Message:           result.Message,
			Warnings:          nonNilWarnings(result.Warnings),
			CalculationTimeMs: result.CalculationTimeMs,
		})
	default:
		logger.WithContext(r.Context()).Error().
			Str("message", result.Message).
			Msg("排班求解内部错误")
		respondError(w, errors.New(errors.CodeModelInvalid, result.Message))
	}
}

// VerifyRequest 排班验证请求
type VerifyRequest struct {
	model.ScheduleRequest
	Schedule model.Schedule `json:"schedule"`
	Warnings []string       `json:"warnings,omitempty"`
}

// VerifyResponse 排班验证响应
type VerifyResponse struct {
	IsValid    bool                  `json:"is_valid"`
	Violations []validator.Violation `json:"violations,omitempty"`
}

// Verify 独立验证一份排班结果是否满足硬性不变量
func (h *ScheduleHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	if ve := validator.ValidateRequest(&req.ScheduleRequest); ve != nil {
		respondError(w, ve.ToAppError())
		return
	}

	violations := validator.VerifySchedule(&req.ScheduleRequest, req.Schedule)
	if len(req.Warnings) > 0 {
		violations = append(violations,
			validator.VerifyWarnings(&req.ScheduleRequest, req.Schedule, req.Warnings)...)
	}

	respondJSON(w, http.StatusOK, VerifyResponse{
		IsValid:    len(violations) == 0,
		Violations: violations,
	})
}

// nonNilWarnings 保证警告列表序列化为 [] 而不是 null
func nonNilWarnings(warnings []string) []string {
	if warnings == nil {
		return []string{}
	}
	return warnings
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"code":    err.Code,
		"message": err.Message,
		"details": err.Details,
		"fields":  err.Fields,
	})
}
