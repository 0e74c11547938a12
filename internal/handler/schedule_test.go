package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zhoupai/zhoupai/pkg/solver"
)

func testHandler() *ScheduleHandler {
	return NewScheduleHandler(solver.Options{TimeLimit: 30 * time.Second})
}

func TestGenerate_MethodNotAllowed(t *testing.T) {
	h := testHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/generate", nil)
	w := httptest.NewRecorder()

	h.Generate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d, expected 400", w.Code)
	}
}

func TestGenerate_InvalidJSON(t *testing.T) {
	h := testHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/generate", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Generate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d, expected 400", w.Code)
	}
}

func TestGenerate_ValidationError(t *testing.T) {
	h := testHandler()
	body := `{"staffList": [], "weeklyNeeds": {}, "shiftDefinitions": {}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/generate", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Generate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("状态码 = %d, expected 400", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if resp["success"] != false || resp["code"] != "VALIDATION_FAILED" {
		t.Errorf("响应内容不符: %v", resp)
	}
}

func TestGenerate_Success(t *testing.T) {
	h := testHandler()
	body := `{
		"staffList": [
			{"id": "alice", "name": "Alice", "rolesInPreferenceOrder": ["Server"], "maxHoursPerWeek": 40}
		],
		"unavailabilityList": [],
		"weeklyNeeds": {"Monday": {"AM": {"Server": 1}}},
		"shiftDefinitions": {"AM": {"start": "12:00", "end": "19:00", "hours": 7.0}}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/generate", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Generate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, expected 200: %s", w.Code, w.Body.String())
	}

	var resp GenerateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if !resp.Success {
		t.Fatalf("success = false: %s", resp.Message)
	}
	ids := resp.Schedule.Assigned("Monday", "AM", "Server")
	if len(ids) != 1 || ids[0] != "alice" {
		t.Errorf("排班结果 = %v, expected [alice]", ids)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("不应有警告: %v", resp.Warnings)
	}
	if resp.Statistics == nil || resp.Statistics.TotalAssigned != 1 {
		t.Errorf("统计信息不符: %+v", resp.Statistics)
	}
}

func TestGenerate_Infeasible(t *testing.T) {
	h := testHandler()
	body := `{
		"staffList": [
			{"id": "alice", "name": "Alice", "rolesInPreferenceOrder": ["Server"], "maxHoursPerWeek": 0}
		],
		"unavailabilityList": [],
		"weeklyNeeds": {"Monday": {"AM": {"Server": 1}}},
		"shiftDefinitions": {"AM": {"start": "12:00", "end": "19:00", "hours": 7.0}}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/generate", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Generate(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("状态码 = %d, expected 422: %s", w.Code, w.Body.String())
	}

	var resp GenerateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if resp.Success || resp.Message == "" {
		t.Errorf("不可行响应内容不符: %+v", resp)
	}
}

func TestVerify_DetectsViolation(t *testing.T) {
	h := testHandler()
	body := `{
		"staffList": [
			{"id": "alice", "name": "Alice", "rolesInPreferenceOrder": ["Server"]}
		],
		"unavailabilityList": [],
		"weeklyNeeds": {"Monday": {"AM": {"Server": 1}}},
		"shiftDefinitions": {"AM": {"start": "12:00", "end": "19:00", "hours": 7.0}},
		"schedule": {"Monday": {"AM": {"Expo": ["alice"]}}}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/verify", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Verify(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, expected 200: %s", w.Code, w.Body.String())
	}

	var resp VerifyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if resp.IsValid || len(resp.Violations) == 0 {
		t.Errorf("应检出违规: %+v", resp)
	}
}
