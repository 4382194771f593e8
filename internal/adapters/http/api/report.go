package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/okian/salespulse/internal/domain/model"
	"github.com/okian/salespulse/internal/domain/report"
)

// validate checks request envelopes; record-level problems (bad dates,
// unknown emails) stay data-quality signals and never fail the request.
var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // validator instances are designed to be shared

// viewerPayload identifies the requesting user.
type viewerPayload struct {
	Email    string `json:"email" validate:"required,email"`
	JobTitle string `json:"job_title" validate:"required"`
}

// reportRequest mirrors the POST /v1/report body. The collections are the
// complete in-memory snapshots for the relevant ranges; retrieval and
// persistence stay with the caller.
type reportRequest struct {
	Viewer     viewerPayload               `json:"viewer" validate:"required"`
	Users      []model.UserRecord          `json:"users" validate:"required,min=1,dive"`
	Snapshots  []model.PerformanceSnapshot `json:"snapshots"`
	Activities []model.ActivityEvent       `json:"activities"`
	Targets    []model.TargetRecord        `json:"targets"`
	Groups     []model.GroupRecord         `json:"groups"`

	// Optional overrides and the injected "now".
	TrackingWindowDays int    `json:"tracking_window_days" validate:"omitempty,min=1,max=90"`
	DailyWalkInMinimum int    `json:"daily_walkin_minimum" validate:"omitempty,min=1"`
	AsOf               string `json:"as_of" validate:"omitempty"`
}

// ReportHandler handles report build requests.
type ReportHandler struct {
	deps     Dependencies
	maxBytes int64
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps Dependencies, maxBytes int64) *ReportHandler {
	return &ReportHandler{deps: deps, maxBytes: maxBytes}
}

// HandleBuildReport handles POST /v1/report requests.
func (h *ReportHandler) HandleBuildReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.build_report"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrap(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrap(op, ErrBadRequest, err))
		return
	}

	asOf := model.Day(time.Now())
	if req.AsOf != "" {
		day, ok := model.ParseDay(req.AsOf)
		if !ok {
			writeError(w, http.StatusBadRequest, "bad_request", wrap(op, ErrBadAsOf, nil))
			return
		}
		asOf = day
	}

	in := report.Input{
		Viewer: model.Viewer{
			Email: req.Viewer.Email,
			Role:  model.RoleFromTitle(req.Viewer.JobTitle),
		},
		Users:        req.Users,
		Snapshots:    req.Snapshots,
		Activities:   req.Activities,
		Targets:      req.Targets,
		Groups:       req.Groups,
		AsOf:         asOf,
		TrackingDays: req.TrackingWindowDays,
		DailyMinimum: req.DailyWalkInMinimum,
	}

	rep, err := h.deps.BuildReport(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "build_failed", wrap(op, ErrBuildReport, err))
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
