// Package resume implements resume upload, parsing, and primary-resume
// management for job seekers.
package resume

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/TalentMatch-AI/internal/domain/identity"
	domres "github.com/turtacn/TalentMatch-AI/internal/domain/resume"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/storage/minio"
	"github.com/turtacn/TalentMatch-AI/internal/intelligence/oracle"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// Oracle is the subset of the AI client used for resume parsing.
type Oracle interface {
	ParseResume(ctx context.Context, fileName string, content io.Reader) (oracle.RawResult, error)
}

// BlobStore is the object-storage surface resumes need.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Locker serializes writes touching one job seeker.
type Locker interface {
	WithJobSeekerLock(ctx context.Context, jobSeekerID string, fn func(ctx context.Context) error) error
}

// allowed upload extensions.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".md":   true,
}

// Upload carries one incoming resume file.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Service manages resumes.
type Service struct {
	oracle   Oracle
	repo     domres.Repository
	blobs    BlobStore
	locks    Locker
	events   kafka.Producer
	log      logging.Logger
	maxBytes int64
}

// NewService wires a resume Service.
func NewService(o Oracle, repo domres.Repository, blobs BlobStore, locks Locker, events kafka.Producer, maxBytes int64, log logging.Logger) *Service {
	return &Service{
		oracle:   o,
		repo:     repo,
		blobs:    blobs,
		locks:    locks,
		events:   events,
		log:      log.Named("resume"),
		maxBytes: maxBytes,
	}
}

// Upload stores the file, records its metadata, and submits it to the AI
// service for parsing.  Parsing is best-effort: a parse failure leaves the
// resume recorded with empty parsed content, and a later re-parse can fill it
// in.  The first resume a job seeker uploads becomes primary automatically.
func (s *Service) Upload(ctx context.Context, ident identity.Identity, jobSeekerID uuid.UUID, up Upload) (*domres.Resume, error) {
	if !ident.CanActFor(jobSeekerID) {
		return nil, appErrors.Forbidden("cannot upload a resume for another job seeker")
	}
	if up.Size > s.maxBytes {
		return nil, appErrors.New(appErrors.ErrCodeResumeTooLarge, "resume file exceeds size limit")
	}
	ext := strings.ToLower(filepath.Ext(up.FileName))
	if !allowedExtensions[ext] {
		return nil, appErrors.New(appErrors.ErrCodeResumeBadFormat, "unsupported resume format").
			WithDetail("extension=" + ext)
	}

	// The payload feeds both object storage and the parser.
	data, err := io.ReadAll(io.LimitReader(up.Content, s.maxBytes+1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeInternal, "read upload")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, appErrors.New(appErrors.ErrCodeResumeTooLarge, "resume file exceeds size limit")
	}

	rec := &domres.Resume{
		ID:          uuid.New(),
		JobSeekerID: jobSeekerID,
		FileName:    up.FileName,
		ContentType: up.ContentType,
		SizeBytes:   int64(len(data)),
		UploadedAt:  time.Now().UTC(),
	}
	rec.ObjectKey = minio.ObjectKey(jobSeekerID.String(), rec.ID.String(), up.FileName)

	if err := s.blobs.Put(ctx, rec.ObjectKey, bytes.NewReader(data), rec.SizeBytes, up.ContentType); err != nil {
		return nil, err
	}

	err = s.locks.WithJobSeekerLock(ctx, jobSeekerID.String(), func(ctx context.Context) error {
		existing, err := s.repo.ListByJobSeeker(ctx, jobSeekerID)
		if err != nil {
			return err
		}
		rec.IsPrimary = len(existing) == 0
		return s.repo.Create(ctx, rec)
	})
	if err != nil {
		// Best effort cleanup of the orphaned object.
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), rec.ObjectKey); delErr != nil {
			s.log.Warn("orphaned resume object not cleaned up",
				logging.String("key", rec.ObjectKey), logging.Err(delErr))
		}
		return nil, err
	}

	s.parse(ctx, rec, data)
	return rec, nil
}

// parse submits the file to the AI service and stores whatever content comes
// back.  Failures are logged, never returned.
func (s *Service) parse(ctx context.Context, rec *domres.Resume, data []byte) {
	raw, err := s.oracle.ParseResume(ctx, rec.FileName, bytes.NewReader(data))
	if err != nil {
		s.log.Warn("resume parse failed",
			logging.String("resume_id", rec.ID.String()), logging.Err(err))
		return
	}
	if raw.Empty {
		s.log.Warn("resume parse produced no content",
			logging.String("resume_id", rec.ID.String()))
		return
	}
	content := string(raw.Body)
	if err := s.repo.UpdateParsedContent(ctx, rec.ID, content); err != nil {
		s.log.Error("parsed content not stored",
			logging.String("resume_id", rec.ID.String()), logging.Err(err))
		return
	}
	rec.ParsedContent = content

	if err := s.events.Publish(ctx, kafka.TopicResumeParsed, rec.JobSeekerID.String(),
		kafka.ResumeParsedEvent{
			ResumeID:    rec.ID.String(),
			JobSeekerID: rec.JobSeekerID.String(),
			ParsedAtMS:  time.Now().UnixMilli(),
		}); err != nil {
		s.log.Warn("resume parsed event publish failed", logging.Err(err))
	}
}

// Reparse re-submits a stored resume to the AI service.
func (s *Service) Reparse(ctx context.Context, ident identity.Identity, resumeID uuid.UUID) (*domres.Resume, error) {
	rec, err := s.repo.GetByID(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if !ident.CanActFor(rec.JobSeekerID) {
		return nil, appErrors.Forbidden("cannot reparse another job seeker's resume")
	}

	obj, err := s.blobs.Get(ctx, rec.ObjectKey)
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeStorageError, "read stored resume")
	}

	raw, err := s.oracle.ParseResume(ctx, rec.FileName, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if raw.Empty {
		return nil, appErrors.New(appErrors.ErrCodeResumeParseEmpty, "resume parsing produced no content")
	}
	content := string(raw.Body)
	if err := s.repo.UpdateParsedContent(ctx, rec.ID, content); err != nil {
		return nil, err
	}
	rec.ParsedContent = content
	return rec, nil
}

// List returns the job seeker's resumes, newest first.
func (s *Service) List(ctx context.Context, ident identity.Identity, jobSeekerID uuid.UUID) ([]domres.Resume, error) {
	if !ident.CanActFor(jobSeekerID) {
		return nil, appErrors.Forbidden("cannot list another job seeker's resumes")
	}
	return s.repo.ListByJobSeeker(ctx, jobSeekerID)
}

// SetPrimary promotes one resume to primary under the job seeker's lock, so a
// concurrent recommendation pass never observes two primaries.
func (s *Service) SetPrimary(ctx context.Context, ident identity.Identity, jobSeekerID, resumeID uuid.UUID) error {
	if !ident.CanActFor(jobSeekerID) {
		return appErrors.Forbidden("cannot modify another job seeker's resumes")
	}
	return s.locks.WithJobSeekerLock(ctx, jobSeekerID.String(), func(ctx context.Context) error {
		return s.repo.SetPrimary(ctx, jobSeekerID, resumeID)
	})
}

// Delete removes the resume row and its stored file.
func (s *Service) Delete(ctx context.Context, ident identity.Identity, resumeID uuid.UUID) error {
	rec, err := s.repo.GetByID(ctx, resumeID)
	if err != nil {
		return err
	}
	if !ident.CanActFor(rec.JobSeekerID) {
		return appErrors.Forbidden("cannot delete another job seeker's resume")
	}
	err = s.locks.WithJobSeekerLock(ctx, rec.JobSeekerID.String(), func(ctx context.Context) error {
		return s.repo.Delete(ctx, resumeID)
	})
	if err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, rec.ObjectKey); err != nil {
		s.log.Warn("stored resume file not deleted",
			logging.String("key", rec.ObjectKey), logging.Err(err))
	}
	return nil
}

// DownloadURL returns a time-limited link to the raw file.
func (s *Service) DownloadURL(ctx context.Context, ident identity.Identity, resumeID uuid.UUID) (string, error) {
	rec, err := s.repo.GetByID(ctx, resumeID)
	if err != nil {
		return "", err
	}
	if !ident.CanActFor(rec.JobSeekerID) && !ident.IsRecruiter() {
		return "", appErrors.Forbidden("cannot download this resume")
	}
	return s.blobs.PresignedGetURL(ctx, rec.ObjectKey, 15*time.Minute)
}
