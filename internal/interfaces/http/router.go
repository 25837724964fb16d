// Package http assembles the gin engine and the HTTP server lifecycle.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turtacn/TalentMatch-AI/internal/config"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	prommetrics "github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/TalentMatch-AI/internal/interfaces/http/handlers"
	"github.com/turtacn/TalentMatch-AI/internal/interfaces/http/middleware"
)

// Handlers bundles the route handlers the router mounts.
type Handlers struct {
	Health         *handlers.HealthHandler
	Job            *handlers.JobHandler
	Resume         *handlers.ResumeHandler
	Screening      *handlers.ScreeningHandler
	Recommendation *handlers.RecommendationHandler
	Sourcing       *handlers.SourcingHandler
}

// NewRouter builds the gin engine with the full middleware chain and route
// table.
func NewRouter(cfg *config.Config, h Handlers, metrics *prommetrics.Metrics, log logging.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLog(log, metrics))

	r.GET("/healthz", h.Health.Live)
	r.GET("/readyz", h.Health.Ready)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(),
			promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(cfg.Auth))
	api.Use(middleware.RateLimit(300, time.Minute))

	jobs := api.Group("/jobs")
	{
		jobs.POST("", h.Job.Create)
		jobs.GET("", h.Job.Search)
		jobs.GET("/mine", h.Job.ListMine)
		jobs.GET("/:jobId", h.Job.Get)
		jobs.PUT("/:jobId", h.Job.Update)
		jobs.POST("/:jobId/close", h.Job.Close)
		jobs.DELETE("/:jobId", h.Job.Delete)

		// AI-backed recruiter operations on one posting.
		jobs.POST("/:jobId/screen", h.Screening.Screen)
		jobs.POST("/:jobId/shortlist", h.Screening.Shortlist)
		jobs.POST("/:jobId/clusters", h.Screening.Clusters)
		jobs.POST("/:jobId/advanced-match", h.Sourcing.AdvancedMatch)
		jobs.GET("/:jobId/predict-fit/:candidateId", h.Sourcing.PredictFit)
	}

	seekers := api.Group("/job-seekers/:jobSeekerId")
	{
		seekers.POST("/resumes", h.Resume.Upload)
		seekers.GET("/resumes", h.Resume.List)
		seekers.PUT("/resumes/:resumeId/primary", h.Resume.SetPrimary)

		seekers.POST("/recommendations", h.Recommendation.Recommend)
		seekers.GET("/recommendations", h.Recommendation.History)
		seekers.DELETE("/recommendations", h.Recommendation.ClearHistory)
		seekers.POST("/skill-gap", h.Recommendation.SkillGap)
		seekers.GET("/career-path", h.Recommendation.CareerPath)
	}

	resumes := api.Group("/resumes/:resumeId")
	{
		resumes.POST("/reparse", h.Resume.Reparse)
		resumes.DELETE("", h.Resume.Delete)
		resumes.GET("/download-url", h.Resume.DownloadURL)
	}

	recruiter := api.Group("/recruiter")
	{
		recruiter.GET("/candidates", h.Sourcing.SearchPool)
		recruiter.POST("/cluster-pool", h.Sourcing.ClusterPool)
		recruiter.GET("/insights", h.Sourcing.BusinessInsights)
	}

	return r
}
