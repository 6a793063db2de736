package handlers

import (
	"context"
	"net/http"
	"strconv"

	"legal-roster/database"
	"legal-roster/models"
	"legal-roster/service"

	"github.com/gin-gonic/gin"
)

// Roster is what the HTTP layer needs from the record service
type Roster interface {
	ListLawyers(ctx context.Context) ([]models.Lawyer, error)
	ListCases(ctx context.Context) ([]models.LegalCase, error)
	GetCaseWithLawyers(ctx context.Context, caseID int64) ([]models.CaseLawyerRow, error)
	AddLawyer(ctx context.Context, req service.AddLawyerRequest) (int64, error)
	AddCase(ctx context.Context, req service.AddCaseRequest) (int64, error)
	AssignLawyerToCase(ctx context.Context, req service.AssignLawyerRequest) error
	ListAssignments(ctx context.Context) ([]models.CaseAssignment, error)
	Ping(ctx context.Context) error
	PoolStats() database.Stat
}

// RosterHandler handles HTTP requests for lawyers, cases and assignments
type RosterHandler struct {
	roster Roster
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(roster Roster) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// RegisterRoutes mounts the roster endpoints on r
func (h *RosterHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/lawyers", h.ListLawyers)
		api.POST("/lawyers", h.CreateLawyer)

		api.GET("/cases", h.ListCases)
		api.POST("/cases", h.CreateCase)
		api.GET("/cases/:id", h.GetCase)
		api.POST("/cases/:id/assignments", h.AssignLawyer)

		api.GET("/assignments", h.ListAssignments)
	}
}

// Health handles GET /health
func (h *RosterHandler) Health(c *gin.Context) {
	if err := h.roster.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  err.Error(),
			"pool":   h.roster.PoolStats(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"pool":   h.roster.PoolStats(),
	})
}

// ListLawyers handles GET /api/lawyers
func (h *RosterHandler) ListLawyers(c *gin.Context) {
	lawyers, err := h.roster.ListLawyers(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondData(c, http.StatusOK, lawyers)
}

// CreateLawyer handles POST /api/lawyers
func (h *RosterHandler) CreateLawyer(c *gin.Context) {
	var req service.AddLawyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondErr(c, err)
		return
	}

	id, err := h.roster.AddLawyer(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"lawyer_id": id})
}

// ListCases handles GET /api/cases
func (h *RosterHandler) ListCases(c *gin.Context) {
	cases, err := h.roster.ListCases(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondData(c, http.StatusOK, cases)
}

// CreateCase handles POST /api/cases
func (h *RosterHandler) CreateCase(c *gin.Context) {
	var req service.AddCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondErr(c, err)
		return
	}

	id, err := h.roster.AddCase(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"case_id": id})
}

// GetCase handles GET /api/cases/:id
func (h *RosterHandler) GetCase(c *gin.Context) {
	caseID, ok := parseID(c)
	if !ok {
		return
	}

	rows, err := h.roster.GetCaseWithLawyers(c.Request.Context(), caseID)
	if err != nil {
		respondErr(c, err)
		return
	}

	detail := models.NewCaseDetail(rows)
	if detail == nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Case not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"case":        detail.Case,
		"lawyers":     detail.Lawyers,
		"total_hours": detail.TotalHours(),
	})
}

// assignLawyerBody is the body of POST /api/cases/:id/assignments
type assignLawyerBody struct {
	LawyerID      int64   `json:"lawyer_id"`
	Role          string  `json:"role"`
	BillableHours float64 `json:"billable_hours"`
}

// AssignLawyer handles POST /api/cases/:id/assignments
func (h *RosterHandler) AssignLawyer(c *gin.Context) {
	caseID, ok := parseID(c)
	if !ok {
		return
	}

	var body assignLawyerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	req := service.AssignLawyerRequest{
		CaseID:        caseID,
		LawyerID:      body.LawyerID,
		Role:          body.Role,
		BillableHours: body.BillableHours,
	}
	if err := req.Validate(); err != nil {
		respondErr(c, err)
		return
	}

	if err := h.roster.AssignLawyerToCase(c.Request.Context(), req); err != nil {
		respondErr(c, err)
		return
	}
	respondData(c, http.StatusCreated, req)
}

// ListAssignments handles GET /api/assignments
func (h *RosterHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.roster.ListAssignments(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondData(c, http.StatusOK, assignments)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid case ID format")
		return 0, false
	}
	return id, true
}
