package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/iwvelando/gig-planner/pkg/constants"
	"github.com/iwvelando/gig-planner/pkg/failure"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func TestHandleOptimizeUploadSuccess(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	data, err := os.ReadFile(filepath.Join("..", "..", "test", "test_config.yaml"))
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}

	rr := performUpload(t, handler, string(data), "test_config.yaml")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp optimizeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if _, err := uuid.Parse(resp.RunID); err != nil {
		t.Fatalf("expected a UUID run id, got %q", resp.RunID)
	}
	if resp.Selection.TotalPay != 5200 || resp.Selection.TotalHours != 80 {
		t.Fatalf("expected 5200 for 80 hours, got %v for %v", resp.Selection.TotalPay, resp.Selection.TotalHours)
	}
	names := strings.Join(resp.Selection.Names(), ",")
	if names != "Data Dashboard Development,WordPress Plugin Development" {
		t.Fatalf("unexpected selection %s", names)
	}
	if resp.Selection.EligibleCount != 3 || resp.Selection.CandidateCount != 4 {
		t.Fatalf("expected 3 of 4 eligible, got %d of %d", resp.Selection.EligibleCount, resp.Selection.CandidateCount)
	}
	if len(resp.Selection.Indices) != 2 || resp.Selection.Indices[0] != 2 || resp.Selection.Indices[1] != 3 {
		t.Fatalf("expected indices [2 3], got %v", resp.Selection.Indices)
	}
	if len(resp.Skipped) != 2 {
		t.Fatalf("expected 2 skipped projects, got %d", len(resp.Skipped))
	}
	if resp.CSV == "" {
		t.Fatal("expected CSV data in response")
	}
	if resp.Duration == "" {
		t.Fatal("expected duration in response")
	}
	if resp.Config == nil {
		t.Fatal("expected config data in response")
	}
	if resp.ConfigYAML == "" {
		t.Fatal("expected config YAML in response")
	}
}

func TestHandleOptimizeJSONSuccess(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	data, err := os.ReadFile(filepath.Join("..", "..", "test", "test_config.yaml"))
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}

	var payload map[string]interface{}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to unmarshal yaml: %v", err)
	}

	rr := performJSON(t, handler, map[string]interface{}{"config": payload}, "/api/optimize")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp optimizeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Selection.TotalPay != 5200 {
		t.Fatalf("expected total pay 5200, got %v", resp.Selection.TotalPay)
	}
	if resp.Selection.Method != constants.SolverMethodDP {
		t.Fatalf("expected configured dp solver, got %s", resp.Selection.Method)
	}
}

func TestHandleOptimizeUsesSample(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	rr := performJSON(t, handler, map[string]interface{}{
		"config":  map[string]interface{}{},
		"options": map[string]interface{}{"useSample": "true"},
	}, "/api/optimize")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp optimizeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Selection.TotalPay != 5500 || resp.Selection.TotalHours != 80 {
		t.Fatalf("expected sample optimum of 5500 in 80 hours, got %v in %v", resp.Selection.TotalPay, resp.Selection.TotalHours)
	}
	if !strings.Contains(resp.ConfigYAML, "Brand Identity Package") {
		t.Fatalf("expected sample projects in returned configuration")
	}
}

func TestHandleOptimizeFailureStatuses(t *testing.T) {
	tests := []struct {
		name   string
		config string
		status int
		kind   failure.Kind
	}{
		{
			name: "invalid project",
			config: `
availableHours: 10
projects:
  - name: broken
    totalPay: 100
    hoursRequired: -1
    skillMatch: 50
`,
			status: http.StatusBadRequest,
			kind:   failure.KindConfiguration,
		},
		{
			name: "unknown solver",
			config: `
availableHours: 10
projects:
  - {name: a, totalPay: 100, hoursRequired: 1, skillMatch: 50}
solver:
  method: greedy
`,
			status: http.StatusBadRequest,
			kind:   failure.KindConfiguration,
		},
		{
			name: "nothing eligible",
			config: `
availableHours: 10
minSkillMatch: 99
projects:
  - {name: a, totalPay: 100, hoursRequired: 1, skillMatch: 50}
`,
			status: http.StatusUnprocessableEntity,
			kind:   failure.KindNoEligibleItems,
		},
		{
			name: "table too large",
			config: `
availableHours: 100
projects:
  - {name: a, totalPay: 100, hoursRequired: 10, skillMatch: 50}
  - {name: b, totalPay: 200, hoursRequired: 20, skillMatch: 50}
solver:
  method: dp
  maxCells: 5
  fallback: false
`,
			status: http.StatusRequestEntityTooLarge,
			kind:   failure.KindProblemTooLarge,
		},
	}

	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := performUpload(t, handler, tt.config, "config.yaml")
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}

			var resp errorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp.Kind != string(tt.kind) {
				t.Fatalf("expected kind %s, got %s (%s)", tt.kind, resp.Kind, resp.Error)
			}
			if resp.RunID == "" {
				t.Fatal("expected run id on error response")
			}
		})
	}
}

func TestStatusForKind(t *testing.T) {
	tests := map[failure.Kind]int{
		failure.KindConfiguration:   http.StatusBadRequest,
		failure.KindNoEligibleItems: http.StatusUnprocessableEntity,
		failure.KindProblemTooLarge: http.StatusRequestEntityTooLarge,
		failure.KindSolver:          http.StatusInternalServerError,
		"":                          http.StatusInternalServerError,
	}
	for kind, expected := range tests {
		if got := statusForKind(kind); got != expected {
			t.Fatalf("statusForKind(%q) = %d, expected %d", kind, got, expected)
		}
	}
}

func TestHandleSample(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	req := httptest.NewRequest(http.MethodGet, "/api/sample", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp struct {
		Config     map[string]interface{} `json:"config"`
		ConfigYAML string                 `json:"configYaml"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	projects, ok := resp.Config["projects"].([]interface{})
	if !ok || len(projects) != 8 {
		t.Fatalf("expected 8 sample projects, got %v", resp.Config["projects"])
	}
	if !strings.Contains(resp.ConfigYAML, "availableHours: 80") {
		t.Fatalf("expected sample budget in YAML, got %q", resp.ConfigYAML)
	}
}

func TestHandleVersion(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, " v1.2.3 ")

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "v1.2.3" {
		t.Fatalf("expected trimmed version, got %q", resp["version"])
	}

	empty := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "")
	rr = httptest.NewRecorder()
	empty.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	if !strings.Contains(rr.Body.String(), `"dev"`) {
		t.Fatalf("expected dev version, got %s", rr.Body.String())
	}
}

func TestHandleConfigExport(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	payload := map[string]interface{}{
		"output": map[string]interface{}{
			"format": "pretty",
		},
		"projects": []interface{}{
			map[string]interface{}{"name": "a", "totalPay": 100.0, "hoursRequired": 1.0, "skillMatch": 50.0},
		},
		"availableHours": 40.0,
		"zzExtra":        true,
	}

	rr := performJSON(t, handler, payload, "/api/export")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	yamlStr := resp["configYaml"]
	if yamlStr == "" {
		t.Fatal("expected configYaml in response")
	}

	var topLevel []string
	for _, line := range strings.Split(strings.TrimRight(yamlStr, "\n"), "\n") {
		if line == "" || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "-") {
			continue
		}
		topLevel = append(topLevel, strings.SplitN(line, ":", 2)[0])
	}

	expected := []string{"availableHours", "projects", "output", "zzExtra"}
	if strings.Join(topLevel, ",") != strings.Join(expected, ",") {
		t.Fatalf("expected key order %v, got %v", expected, topLevel)
	}
}

func TestHandleOptimizeMethodNotAllowed(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	for _, path := range []string{"/api/optimize", "/api/optimize/upload", "/api/export"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: expected status 405, got %d", path, rr.Code)
		}
	}
}

func TestHandleOptimizeUploadTooLarge(t *testing.T) {
	handler := NewHandler(zap.NewNop(), 64, "test")

	rr := performUpload(t, handler, strings.Repeat("a", 128), "config.yaml")
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", rr.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if !strings.Contains(resp.Error, "upload exceeds limit") {
		t.Fatalf("expected upload limit error message, got %q", resp.Error)
	}
}

func TestHandleOptimizeUploadMissingFile(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/optimize/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error != "missing configuration file" {
		t.Fatalf("expected missing file error, got %q", resp.Error)
	}
}

func TestHandleOptimizeUploadInvalidYAML(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	rr := performUpload(t, handler, "availableHours: [", "config.yaml")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if !strings.Contains(resp.Error, "error reading config data") {
		t.Fatalf("expected parse error message, got %q", resp.Error)
	}
}

func TestHandleOptimizeInvalidJSON(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	req := httptest.NewRequest(http.MethodPost, "/api/optimize", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	rr = performJSON(t, handler, map[string]interface{}{"config": "nope"}, "/api/optimize")
	if rr.Code != http.StatusBadRequest || !strings.Contains(rr.Body.String(), "expected object") {
		t.Fatalf("expected object error, got %d %s", rr.Code, rr.Body.String())
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		value    interface{}
		expected bool
	}{
		{true, true},
		{"yes", false},
		{"true", true},
		{" 1 ", true},
		{float64(0), false},
		{float64(2), true},
		{json.Number("1.5"), true},
		{nil, false},
	}
	for _, tt := range tests {
		if got := coerceBool(tt.value); got != tt.expected {
			t.Fatalf("coerceBool(%v) = %v, expected %v", tt.value, got, tt.expected)
		}
	}
}

func performUpload(t *testing.T, handler http.Handler, content, filename string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/optimize/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}

func performJSON(t *testing.T, handler http.Handler, payload map[string]interface{}, path string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}
