package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/TalentMatch-AI/internal/application/recommendation"
)

// RecommendationHandler exposes the job-seeker recommendation endpoints.
type RecommendationHandler struct {
	svc *recommendation.Service
}

// NewRecommendationHandler builds a RecommendationHandler.
func NewRecommendationHandler(svc *recommendation.Service) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

type recommendRequest struct {
	UseSemantic  bool `json:"useSemanticMatching"`
	ContextAware bool `json:"includeContextAwareMatching"`
	Max          int  `json:"maxSuggestions"`
}

// Recommend runs a scoring pass and returns the accumulated history ordered
// by match score.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	seekerID, ok := pathUUID(c, "jobSeekerId")
	if !ok {
		return
	}
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondError(c, bindError(err))
		return
	}

	recs, err := h.svc.Recommend(c.Request.Context(), ident, seekerID, recommendation.Options{
		UseSemantic:  req.UseSemantic,
		ContextAware: req.ContextAware,
		Max:          req.Max,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"recommendations": recs})
}

// History returns persisted recommendations without a new scoring pass.
func (h *RecommendationHandler) History(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	seekerID, ok := pathUUID(c, "jobSeekerId")
	if !ok {
		return
	}
	recs, err := h.svc.History(c.Request.Context(), ident, seekerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"recommendations": recs})
}

// ClearHistory deletes the job seeker's persisted recommendations.
func (h *RecommendationHandler) ClearHistory(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	seekerID, ok := pathUUID(c, "jobSeekerId")
	if !ok {
		return
	}
	if err := h.svc.ClearHistory(c.Request.Context(), ident, seekerID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}

type skillGapRequest struct {
	JobID uuid.UUID `json:"jobPostingId" binding:"required"`
}

// SkillGap analyses the seeker's primary resume against one job posting.
func (h *RecommendationHandler) SkillGap(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	seekerID, ok := pathUUID(c, "jobSeekerId")
	if !ok {
		return
	}
	var req skillGapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	gap, err := h.svc.SkillGap(c.Request.Context(), ident, seekerID, req.JobID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gap)
}

// CareerPath suggests career progressions for the job seeker.
func (h *RecommendationHandler) CareerPath(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	seekerID, ok := pathUUID(c, "jobSeekerId")
	if !ok {
		return
	}
	paths, err := h.svc.CareerPath(c.Request.Context(), ident, seekerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"careerPaths": paths})
}
