package auditor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mahim2022/websiteAuditTool/internal/model"
	"github.com/mahim2022/websiteAuditTool/internal/platform/errs"
)

const (
	auditTimeout = 60 * time.Second
	version      = "1.0.0"
)

var errURLRequired = errors.New("the \"url\" field is required")

// Transport handles HTTP requests for page audits.
type Transport struct {
	service *Service
	logger  *slog.Logger
	started time.Time
}

// NewTransport wires the HTTP handlers to a service.
func NewTransport(service *Service, logger *slog.Logger) *Transport {
	return &Transport{service: service, logger: logger, started: time.Now()}
}

// RegisterRoutes attaches the transport's handlers to the router. Extra
// middleware applies to the audit route only, keeping health probes cheap.
func (t *Transport) RegisterRoutes(r chi.Router, auditMW ...func(http.Handler) http.Handler) {
	r.With(auditMW...).Post("/audit", t.handleAudit)
	r.Get("/healthz", t.handleHealth)
}

type auditRequest struct {
	URL string `json:"url"`
}

func (r auditRequest) validate() error {
	if r.URL == "" {
		return errURLRequired
	}
	return nil
}

func (t *Transport) handleAudit(w http.ResponseWriter, r *http.Request) {
	const maxRequestBody = 1 << 20 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req auditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.renderError(w, http.StatusBadRequest, "Invalid request body. Please send a JSON object with a \"url\" field.")
		return
	}

	if err := req.validate(); err != nil {
		t.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), auditTimeout)
	defer cancel()

	// A pipeline failure is not a transport failure: the report ships with
	// its error field set and the caller reads it from there.
	report, err := t.service.Audit(ctx, req.URL)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, report)
}

type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}

func (t *Transport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	t.renderJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Version:       version,
		UptimeSeconds: int64(time.Since(t.started).Seconds()),
	})
}

func (t *Transport) handleServiceError(w http.ResponseWriter, err error) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Kind {
		case errs.InvalidInput:
			status = http.StatusBadRequest
		case errs.Unreachable:
			status = http.StatusBadGateway
		case errs.Timeout:
			status = http.StatusGatewayTimeout
		case errs.ParsingFailed, errs.Unknown:
			// 500 Internal Server Error
		}
		t.renderError(w, status, appErr.Message)
		return
	}

	t.renderError(w, http.StatusInternalServerError, "An unexpected error occurred.")
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string) {
	t.renderJSON(w, status, model.ErrorResponse{
		Error:      http.StatusText(status),
		StatusCode: status,
		Message:    message,
	})
}
