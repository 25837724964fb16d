package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appresume "github.com/turtacn/TalentMatch-AI/internal/application/resume"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// ResumeHandler exposes resume upload and management endpoints.
type ResumeHandler struct {
	svc *appresume.Service
}

// NewResumeHandler builds a ResumeHandler.
func NewResumeHandler(svc *appresume.Service) *ResumeHandler {
	return &ResumeHandler{svc: svc}
}

// Upload accepts a multipart resume file for the job seeker.
func (h *ResumeHandler) Upload(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	seekerID, ok := pathUUID(c, "jobSeekerId")
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, appErrors.Validation("multipart field 'file' is required"))
		return
	}
	src, err := file.Open()
	if err != nil {
		respondError(c, appErrors.Wrap(err, appErrors.ErrCodeInternal, "open upload"))
		return
	}
	defer src.Close()

	rec, err := h.svc.Upload(c.Request.Context(), ident, seekerID, appresume.Upload{
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Content:     src,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, rec)
}

// List returns the job seeker's resumes.
func (h *ResumeHandler) List(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	seekerID, ok := pathUUID(c, "jobSeekerId")
	if !ok {
		return
	}
	resumes, err := h.svc.List(c.Request.Context(), ident, seekerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"resumes": resumes})
}

// SetPrimary promotes one resume to primary.
func (h *ResumeHandler) SetPrimary(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	seekerID, ok := pathUUID(c, "jobSeekerId")
	if !ok {
		return
	}
	resumeID, ok := pathUUID(c, "resumeId")
	if !ok {
		return
	}
	if err := h.svc.SetPrimary(c.Request.Context(), ident, seekerID, resumeID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}

// Reparse re-submits a stored resume to the AI parser.
func (h *ResumeHandler) Reparse(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	resumeID, ok := pathUUID(c, "resumeId")
	if !ok {
		return
	}
	rec, err := h.svc.Reparse(c.Request.Context(), ident, resumeID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, rec)
}

// Delete removes a resume and its stored file.
func (h *ResumeHandler) Delete(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	resumeID, ok := pathUUID(c, "resumeId")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), ident, resumeID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}

// DownloadURL returns a time-limited link to the raw file.
func (h *ResumeHandler) DownloadURL(c *gin.Context) {
	ident, ok := mustIdentity(c)
	if !ok {
		return
	}
	resumeID, ok := pathUUID(c, "resumeId")
	if !ok {
		return
	}
	url, err := h.svc.DownloadURL(c.Request.Context(), ident, resumeID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"url": url})
}
