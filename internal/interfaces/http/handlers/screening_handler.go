package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/TalentMatch-AI/internal/application/screening"
)

// ScreeningHandler exposes the recruiter screening endpoints.
type ScreeningHandler struct {
	svc *screening.Service
}

// NewScreeningHandler builds a ScreeningHandler.
func NewScreeningHandler(svc *screening.Service) *ScreeningHandler {
	return &ScreeningHandler{svc: svc}
}

type screenRequest struct {
	CandidateIDs []string `json:"candidateIds" binding:"required,min=1"`
	Requirements string   `json:"requirements"`
	Limit        int      `json:"limit"`
}

// Screen scores the given candidates against the posting.
func (h *ScreeningHandler) Screen(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	jobID, ok := pathUUID(c, "jobId")
	if !ok {
		return
	}
	var req screenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	ids, ok := parseUUIDs(c, req.CandidateIDs)
	if !ok {
		return
	}

	records, err := h.svc.Screen(c.Request.Context(), ident, jobID, screening.Request{
		CandidateIDs: ids,
		Requirements: req.Requirements,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"candidates": records})
}

// Shortlist returns the screened total, the top candidates by score and the
// skill clusters over that shortlist.  A limit of zero yields an empty
// shortlist.
func (h *ScreeningHandler) Shortlist(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	jobID, ok := pathUUID(c, "jobId")
	if !ok {
		return
	}
	var req screenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	ids, ok := parseUUIDs(c, req.CandidateIDs)
	if !ok {
		return
	}

	result, err := h.svc.Shortlist(c.Request.Context(), ident, jobID, screening.Request{
		CandidateIDs: ids,
		Requirements: req.Requirements,
	}, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// Clusters buckets the screened candidates by first key skill.
func (h *ScreeningHandler) Clusters(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	jobID, ok := pathUUID(c, "jobId")
	if !ok {
		return
	}
	var req screenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	ids, ok := parseUUIDs(c, req.CandidateIDs)
	if !ok {
		return
	}

	clusters, err := h.svc.ClusterBySkill(c.Request.Context(), ident, jobID, screening.Request{
		CandidateIDs: ids,
		Requirements: req.Requirements,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"clusters": clusters})
}
