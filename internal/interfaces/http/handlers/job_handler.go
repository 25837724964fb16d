package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appjob "github.com/turtacn/TalentMatch-AI/internal/application/job"
	domjob "github.com/turtacn/TalentMatch-AI/internal/domain/job"
)

// JobHandler exposes posting CRUD and search.
type JobHandler struct {
	svc *appjob.Service
}

// NewJobHandler builds a JobHandler.
func NewJobHandler(svc *appjob.Service) *JobHandler {
	return &JobHandler{svc: svc}
}

type postingRequest struct {
	Title        string   `json:"title" binding:"required"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	Skills       []string `json:"skills"`
	SalaryMin    int      `json:"salaryMin"`
	SalaryMax    int      `json:"salaryMax"`
}

func (r postingRequest) toPosting() *domjob.Posting {
	return &domjob.Posting{
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		Description:  r.Description,
		Requirements: r.Requirements,
		Skills:       r.Skills,
		SalaryMin:    r.SalaryMin,
		SalaryMax:    r.SalaryMax,
	}
}

// Create stores a new posting owned by the caller.
func (h *JobHandler) Create(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req postingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	p, err := h.svc.Create(c.Request.Context(), ident, req.toPosting())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, p)
}

// Get returns one posting.
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "jobId")
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, p)
}

// ListMine returns the caller's postings.
func (h *JobHandler) ListMine(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	postings, err := h.svc.ListMine(c.Request.Context(), ident)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"jobs": postings})
}

// Search returns open postings matching query parameters.
func (h *JobHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	postings, err := h.svc.Search(c.Request.Context(), domjob.SearchFilter{
		Keyword:  c.Query("q"),
		Location: c.Query("location"),
		Skill:    c.Query("skill"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"jobs": postings})
}

// Update rewrites a posting the caller owns.
func (h *JobHandler) Update(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "jobId")
	if !ok {
		return
	}
	var req postingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	p := req.toPosting()
	p.ID = id
	updated, err := h.svc.Update(c.Request.Context(), ident, p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}

// Close marks a posting closed.
func (h *JobHandler) Close(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "jobId")
	if !ok {
		return
	}
	if err := h.svc.Close(c.Request.Context(), ident, id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}

// Delete removes a posting.
func (h *JobHandler) Delete(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "jobId")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), ident, id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}
