package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/gig-planner/internal/config"
	"github.com/iwvelando/gig-planner/internal/planner"
	"github.com/iwvelando/gig-planner/pkg/constants"
	"github.com/iwvelando/gig-planner/pkg/failure"
	"github.com/iwvelando/gig-planner/pkg/gig"
	"github.com/iwvelando/gig-planner/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

type optimizeOptions struct {
	// UseSample fills in the demonstration projects when the request has none.
	UseSample bool
}

// NewHandler constructs the HTTP handler that serves the optimization API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Optimization from a JSON configuration
	mux.HandleFunc("/api/optimize", h.handleOptimize)

	// Optimization from an uploaded YAML configuration
	mux.HandleFunc("/api/optimize/upload", h.handleOptimizeUpload)

	// Demonstration configuration
	mux.HandleFunc("/api/sample", h.handleSample)

	// Config serialization endpoint for downloads
	mux.HandleFunc("/api/export", h.handleConfigExport)

	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type optimizeResponse struct {
	RunID      string                 `json:"runId"`
	Selection  gig.Selection          `json:"selection"`
	Skipped    []gig.Candidate        `json:"skipped"`
	CSV        string                 `json:"csv"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

type errorResponse struct {
	RunID string `json:"runId"`
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (h *handler) handleOptimizeUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleOptimizeUpload"
	runID := uuid.NewString()
	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, runID, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "", op)
			return
		}
		h.respondError(w, runID, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "", op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, runID, http.StatusBadRequest, "missing configuration file", "", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.String("runId", runID),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, runID, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "", op)
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, runID, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err),
			string(failure.KindConfiguration), op)
		return
	}

	h.runOptimize(w, r, runID, configBytes, configMap, start, op, optimizeOptions{})
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleOptimize"
	runID := uuid.NewString()
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, runID, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), "", op)
			return
		}
		h.respondError(w, runID, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err),
			string(failure.KindConfiguration), op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondError(w, runID, http.StatusBadRequest, "invalid config payload: expected object",
				string(failure.KindConfiguration), op)
			return
		}
		configPayload = cfgMap
	}

	options := optimizeOptions{}
	if rawOptions, ok := payload["options"]; ok {
		optsMap, ok := rawOptions.(map[string]interface{})
		if !ok {
			h.respondError(w, runID, http.StatusBadRequest, "invalid options payload: expected object",
				string(failure.KindConfiguration), op)
			return
		}
		if useSample, ok := optsMap["useSample"]; ok {
			options.UseSample = coerceBool(useSample)
		}
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondError(w, runID, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err),
			string(failure.KindConfiguration), op)
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, runID, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err),
			string(failure.KindConfiguration), op)
		return
	}

	h.runOptimize(w, r, runID, configBytes, configMap, start, op, options)
}

func (h *handler) handleSample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	sample := config.SampleConfiguration()
	configBytes, err := yaml.Marshal(sample)
	if err != nil {
		h.respondError(w, uuid.NewString(), http.StatusInternalServerError,
			fmt.Sprintf("failed to encode sample configuration: %v", err), "", "server.handleSample")
		return
	}
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, uuid.NewString(), http.StatusInternalServerError,
			fmt.Sprintf("failed to decode sample configuration: %v", err), "", "server.handleSample")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"config":     configMap,
		"configYaml": string(configBytes),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleConfigExport"
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, uuid.NewString(), http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err),
			string(failure.KindConfiguration), op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondError(w, uuid.NewString(), http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err),
			string(failure.KindConfiguration), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// exportKeyOrder lists the top-level keys written first on export, in the
// order a person editing the file expects them.
var exportKeyOrder = []string{"availableHours", "minSkillMatch", "projects", "solver", "logging", "output"}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range exportKeyOrder {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) runOptimize(w http.ResponseWriter, r *http.Request, runID string, configBytes []byte, configMap map[string]interface{}, start time.Time, op string, opts optimizeOptions) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondFailure(w, runID, err, op)
		return
	}

	if opts.UseSample && len(cfg.Projects) == 0 {
		cfg.Projects = config.SampleProjects()
		if cfg.AvailableHours == 0 {
			cfg.AvailableHours = config.SampleAvailableHours
		}
		if updated, err := yaml.Marshal(cfg); err == nil {
			configBytes = updated
			if updatedMap, mapErr := decodeYAMLToMap(updated); mapErr == nil {
				configMap = updatedMap
			}
		} else {
			h.logger.Warn("failed to marshal sample configuration",
				zap.String("op", op),
				zap.String("runId", runID),
				zap.Error(err),
			)
		}
	}

	if err := cfg.Validate(); err != nil {
		h.respondFailure(w, runID, err, op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	runner := planner.NewRunner(h.logger.With(zap.String("runId", runID)), cfg.Solver.ToPlannerOptions())
	selection, err := runner.Run(r.Context(), cfg.Request())
	if err != nil {
		h.respondFailure(w, runID, err, op)
		return
	}

	csvData, err := output.CsvString(selection)
	if err != nil {
		h.logger.Warn("failed to render CSV",
			zap.String("op", op),
			zap.String("runId", runID),
			zap.Error(err),
		)
	}

	elapsed := time.Since(start)

	if configMap == nil {
		configMap = make(map[string]interface{})
	}
	if selection.Selected == nil {
		selection.Selected = []gig.Candidate{}
	}
	skipped := output.Skipped(cfg.Projects, selection)
	if skipped == nil {
		skipped = []gig.Candidate{}
	}

	response := optimizeResponse{
		RunID:      runID,
		Selection:  selection,
		Skipped:    skipped,
		CSV:        csvData,
		Warnings:   warnings,
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	}

	h.logger.Info("optimization served",
		zap.String("op", op),
		zap.String("runId", runID),
		zap.Int("selected", selection.SelectedCount),
		zap.Float64("totalPay", selection.TotalPay),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

// statusForKind maps a failure kind onto the HTTP status reported for it.
func statusForKind(kind failure.Kind) int {
	switch kind {
	case failure.KindConfiguration:
		return http.StatusBadRequest
	case failure.KindNoEligibleItems:
		return http.StatusUnprocessableEntity
	case failure.KindProblemTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondFailure(w http.ResponseWriter, runID string, err error, op string) {
	kind := failure.KindOf(err)
	if kind == "" {
		kind = failure.KindSolver
	}
	h.respondError(w, runID, statusForKind(kind), err.Error(), string(kind), op)
}

func (h *handler) respondError(w http.ResponseWriter, runID string, status int, msg, kind, op string) {
	h.logger.Error("optimization request failed",
		zap.String("op", op),
		zap.String("runId", runID),
		zap.Int("status", status),
		zap.String("kind", kind),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{RunID: runID, Error: msg, Kind: kind})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		if parsed, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return parsed != 0
		}
	}
	return false
}
