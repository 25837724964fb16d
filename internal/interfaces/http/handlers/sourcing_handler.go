package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/TalentMatch-AI/internal/application/sourcing"
	"github.com/turtacn/TalentMatch-AI/internal/domain/jobseeker"
)

// SourcingHandler exposes recruiter-side candidate discovery endpoints.
type SourcingHandler struct {
	svc *sourcing.Service
}

// NewSourcingHandler builds a SourcingHandler.
func NewSourcingHandler(svc *sourcing.Service) *SourcingHandler {
	return &SourcingHandler{svc: svc}
}

type matchRequest struct {
	CandidateIDs []string `json:"candidateIds" binding:"required,min=1"`
	Algorithm    string   `json:"algorithm" binding:"required,oneof=tfidf bert"`
}

// AdvancedMatch scores the pool against the posting with tfidf or bert.
func (h *SourcingHandler) AdvancedMatch(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	jobID, ok := pathUUID(c, "jobId")
	if !ok {
		return
	}
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	ids, ok := parseUUIDs(c, req.CandidateIDs)
	if !ok {
		return
	}
	matches, err := h.svc.AdvancedMatch(c.Request.Context(), ident, jobID, ids, req.Algorithm)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"matches": matches})
}

// PredictFit assesses a single candidate.
func (h *SourcingHandler) PredictFit(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	jobID, ok := pathUUID(c, "jobId")
	if !ok {
		return
	}
	candidateID, ok := pathUUID(c, "candidateId")
	if !ok {
		return
	}
	pred, err := h.svc.PredictFit(c.Request.Context(), ident, jobID, candidateID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, pred)
}

type clusterRequest struct {
	CandidateIDs []string `json:"candidateIds" binding:"required,min=1"`
	NumClusters  int      `json:"numClusters"`
}

// ClusterPool groups the candidate pool using the AI service.
func (h *SourcingHandler) ClusterPool(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req clusterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	ids, ok := parseUUIDs(c, req.CandidateIDs)
	if !ok {
		return
	}
	clusters, err := h.svc.ClusterPool(c.Request.Context(), ident, ids, req.NumClusters)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"clusters": clusters})
}

// SearchPool finds candidate profiles by free-text query.
func (h *SourcingHandler) SearchPool(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	minYears, _ := strconv.Atoi(c.Query("minYears"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	profiles, err := h.svc.SearchPool(c.Request.Context(), ident, jobseeker.SearchFilter{
		Query:    c.Query("q"),
		Location: c.Query("location"),
		MinYears: minYears,
		Limit:    limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"candidates": profiles})
}

// BusinessInsights returns hiring-funnel analytics for the caller's postings.
func (h *SourcingHandler) BusinessInsights(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	insights, err := h.svc.BusinessInsights(c.Request.Context(), ident)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, insights)
}
