package analysis

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Weboses/analyse.arsenio/internal/shared/server/middleware"
	"github.com/Weboses/analyse.arsenio/internal/shared/server/respond"
)

// Handler exposes the analysis endpoints.
type Handler struct {
	Service *Service
}

// Register mounts the analysis routes.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/analyze/start", h.start)
	r.POST("/analyze/process", h.process)
	r.GET("/analyze/:id/status", h.status)
}

type startResponse struct {
	AnalysisID string `json:"analysisId"`
	LeadID     string `json:"leadId"`
	Status     string `json:"status"`
}

func (h *Handler) start(c *gin.Context) {
	var input StartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation", MsgInvalidBody, nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	analysis, lead, err := h.Service.Start(ctx, input)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			respond.Error(c, http.StatusBadRequest, "validation", vErr.Message, nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", MsgStartFailed, nil)
		return
	}

	c.Set("analysisId", analysis.ID)
	c.Set("leadId", lead.ID)
	respond.Accepted(c, startResponse{
		AnalysisID: analysis.ID,
		LeadID:     lead.ID,
		Status:     analysis.Status,
	})
}

type processRequest struct {
	AnalysisID string `json:"analysisId"`
}

type processResponse struct {
	Success    bool   `json:"success"`
	AnalysisID string `json:"analysisId"`
	Status     string `json:"status"`
	Scores     any    `json:"scores,omitempty"`
	Grade      string `json:"grade,omitempty"`
}

// process runs the pipeline to completion within the request and returns
// the resulting scores. A second call while the pipeline runs gets a 409.
func (h *Handler) process(c *gin.Context) {
	var input processRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation", MsgInvalidBody, nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	analysis, err := h.Service.Process(ctx, input.AnalysisID)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", MsgNotFound, nil)
		case errors.Is(err, ErrInFlight):
			respond.Error(c, http.StatusConflict, "conflict", MsgAlreadyRunning, nil)
		case errors.As(err, &vErr):
			respond.Error(c, http.StatusBadRequest, "validation", vErr.Message, nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", MsgProcessFailed, nil)
		}
		return
	}

	c.Set("analysisId", analysis.ID)
	out := processResponse{
		Success:    analysis.Status == StatusCompleted,
		AnalysisID: analysis.ID,
		Status:     analysis.Status,
	}
	if analysis.Summary != nil {
		out.Scores = analysis.Summary.Scores
		out.Grade = analysis.Summary.OverallGrade
	}
	respond.OK(c, out)
}

type statusResponse struct {
	AnalysisID  string         `json:"analysisId"`
	Status      string         `json:"status"`
	Step        int            `json:"step"`
	TotalSteps  int            `json:"totalSteps"`
	Label       string         `json:"label"`
	IsCompleted bool           `json:"isCompleted"`
	IsFailed    bool           `json:"isFailed"`
	EmailSent   bool           `json:"emailSent"`
	Scores      any            `json:"scores,omitempty"`
	Grade       string         `json:"grade,omitempty"`
	Error       *statusFailure `json:"error,omitempty"`
}

type statusFailure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) status(c *gin.Context) {
	analysisID := strings.TrimSpace(c.Param("id"))
	analysis, err := h.Service.Get(c.Request.Context(), analysisID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", MsgNotFound, nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", MsgStatusFailed, nil)
		return
	}

	c.Set("analysisId", analysis.ID)
	step := StepFor(analysis.Status)
	out := statusResponse{
		AnalysisID:  analysis.ID,
		Status:      analysis.Status,
		Step:        step.Step,
		TotalSteps:  TotalSteps,
		Label:       step.Message,
		IsCompleted: analysis.Status == StatusCompleted,
		IsFailed:    analysis.Status == StatusFailed,
		EmailSent:   analysis.EmailSent,
	}
	if analysis.Summary != nil {
		out.Scores = analysis.Summary.Scores
		out.Grade = analysis.Summary.OverallGrade
	}
	if analysis.Status == StatusFailed {
		out.Error = &statusFailure{
			Code:    analysis.ErrorCode,
			Message: analysis.ErrorMessage,
		}
	}
	respond.OK(c, out)
}
