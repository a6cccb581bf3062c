package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hbmp/go-formbank/pkg/bank"
	"github.com/hbmp/go-formbank/pkg/form"
	"github.com/hbmp/go-formbank/pkg/orchestrator"
)

const maxBodyBytes = 4 << 20

// pipelineRequest is the shared body for validate and generate. Bank carries
// an inline YAML question bank; when empty, the server's configured bank path
// is used instead.
type pipelineRequest struct {
	Bank     string `json:"bank,omitempty"`
	Renderer string `json:"renderer,omitempty"`
}

type generateResponse struct {
	Meta        form.Meta            `json:"meta"`
	Stats       form.ValidationStats `json:"stats"`
	Result      *form.BuildResult    `json:"result,omitempty"`
	Output      string               `json:"output,omitempty"`
	ContentType string               `json:"contentType,omitempty"`
}

type errorResponse struct {
	Error string                `json:"error"`
	Stats *form.ValidationStats `json:"stats,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodePipelineRequest(w, r)
	if !ok {
		return
	}

	stats, err := s.pipeline.Validate(r.Context(), req)
	if err != nil {
		s.logger.Error("validate failed", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodePipelineRequest(w, r)
	if !ok {
		return
	}

	result, err := s.pipeline.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, orchestrator.ErrEmptyQuestionBank) {
			stats, statsErr := s.pipeline.Validate(r.Context(), req)
			resp := errorResponse{Error: err.Error()}
			if statsErr == nil {
				resp.Stats = &stats
			}
			writeJSON(w, http.StatusUnprocessableEntity, resp)
			return
		}
		s.logger.Error("generate failed", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Meta:        result.Meta,
		Stats:       result.Stats,
		Result:      result.Built,
		Output:      string(result.Output),
		ContentType: result.Content,
	})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		writeError(w, http.StatusNotFound, "result store is not configured")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	records, err := s.results.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("list results failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list results")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": records})
}

// decodePipelineRequest reads the request body and resolves the orchestrator
// request. An empty body falls through to the configured bank path.
func (s *Server) decodePipelineRequest(w http.ResponseWriter, r *http.Request) (orchestrator.Request, bool) {
	var body pipelineRequest

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return orchestrator.Request{}, false
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			writeError(w, http.StatusBadRequest, "request body must be JSON")
			return orchestrator.Request{}, false
		}
	}

	req := orchestrator.Request{Renderer: body.Renderer}
	switch {
	case body.Bank != "":
		doc, err := bank.NewDocument(bank.SourceFromFile("request"), []byte(body.Bank))
		if err != nil {
			writeError(w, http.StatusBadRequest, "inline bank is empty")
			return orchestrator.Request{}, false
		}
		req.Document = &doc
	case s.bankPath != "":
		req.Source = bank.SourceFromFile(s.bankPath)
	default:
		writeError(w, http.StatusBadRequest, "no bank supplied and no default bank configured")
		return orchestrator.Request{}, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
