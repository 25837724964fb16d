// Package oracle implements the HTTP client for the external AI scoring
// service.  Every call is a single attempt: the AI service is slow and
// expensive, so failures surface immediately and callers decide whether to
// degrade (serve persisted data) or propagate.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"time"

	"github.com/turtacn/TalentMatch-AI/internal/config"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	prommetrics "github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/prometheus"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// RawResult carries the AI service's response body.  Empty marks a response
// that was successful but contained no payload (HTTP 204 or a blank body),
// which callers must distinguish from decode failures.
type RawResult struct {
	Empty bool
	Body  []byte
}

// Decode unmarshals the body into v. Decoding an empty result is an error;
// callers check Empty first.
func (r RawResult) Decode(v any) error {
	if r.Empty {
		return appErrors.New(appErrors.ErrCodeOracleBadResponse, "decode on empty oracle result")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeOracleBadResponse, "decode oracle response")
	}
	return nil
}

// Client talks to the AI scoring service over HTTP.
type Client struct {
	baseURL string
	// std handles scoring and analysis calls; parse has a longer deadline for
	// resume file uploads.
	std     *http.Client
	parse   *http.Client
	log     logging.Logger
	metrics *prommetrics.Metrics
}

// New builds a Client from cfg.  The connect deadline bounds TCP dialing; the
// read deadline bounds the entire exchange including body read.
func New(cfg config.OracleConfig, log logging.Logger, metrics *prommetrics.Metrics) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: cfg.ConnectTimeout,
	}
	return &Client{
		baseURL: cfg.BaseURL,
		std:     &http.Client{Transport: transport, Timeout: cfg.ReadTimeout},
		parse:   &http.Client{Transport: transport, Timeout: cfg.ParseTimeout},
		log:     log.Named("oracle"),
		metrics: metrics,
	}
}

// ParseResume uploads a resume file for structured extraction.
func (c *Client) ParseResume(ctx context.Context, fileName string, content io.Reader) (RawResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return RawResult{}, appErrors.Wrap(err, appErrors.ErrCodeInternal, "build multipart body")
	}
	if _, err := io.Copy(part, content); err != nil {
		return RawResult{}, appErrors.Wrap(err, appErrors.ErrCodeInternal, "copy resume into multipart body")
	}
	if err := mw.Close(); err != nil {
		return RawResult{}, appErrors.Wrap(err, appErrors.ErrCodeInternal, "finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ai/parse-resume", &buf)
	if err != nil {
		return RawResult{}, appErrors.Wrap(err, appErrors.ErrCodeInternal, "build parse-resume request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, c.parse, "parse_resume")
}

// RecommendJobs requests job recommendations for a job seeker.
func (c *Client) RecommendJobs(ctx context.Context, req RecommendJobsRequest) (RawResult, error) {
	return c.postJSON(ctx, "recommend_jobs", "/api/ai/recommend-jobs", req)
}

// SkillGap requests a skill-gap analysis against one job posting.
func (c *Client) SkillGap(ctx context.Context, req SkillGapRequest) (RawResult, error) {
	return c.postJSON(ctx, "skill_gap", "/api/ai/skill-gap", req)
}

// CareerPath requests suggested career progression steps.
func (c *Client) CareerPath(ctx context.Context, req CareerPathRequest) (RawResult, error) {
	return c.postJSON(ctx, "career_path", "/api/ai/career-path", req)
}

// ScreenCandidates submits a requirements text plus a map of candidate ID to
// parsed resume content, and receives per-candidate scores.
func (c *Client) ScreenCandidates(ctx context.Context, req ScreenRequest) (RawResult, error) {
	return c.postJSON(ctx, "screen_candidates", "/api/ai/screen-candidates", req)
}

// AdvancedMatch runs tfidf or bert matching between a job and candidates.
func (c *Client) AdvancedMatch(ctx context.Context, req AdvancedMatchRequest) (RawResult, error) {
	return c.postJSON(ctx, "advanced_match", "/api/ai/advanced-match", req)
}

// PredictFit predicts a single candidate's fit for a job.
func (c *Client) PredictFit(ctx context.Context, req PredictFitRequest) (RawResult, error) {
	return c.postJSON(ctx, "predict_fit", "/api/ai/predict-fit", req)
}

// Cluster groups a candidate pool into skill clusters.
func (c *Client) Cluster(ctx context.Context, req ClusterRequest) (RawResult, error) {
	return c.postJSON(ctx, "cluster", "/api/ai/cluster-candidates", req)
}

// BusinessInsights requests hiring-funnel analytics for a recruiter.
func (c *Client) BusinessInsights(ctx context.Context, req InsightsRequest) (RawResult, error) {
	return c.postJSON(ctx, "business_insights", "/api/ai/business-insights", req)
}

func (c *Client) postJSON(ctx context.Context, operation, path string, payload any) (RawResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return RawResult{}, appErrors.Wrap(err, appErrors.ErrCodeInternal, "marshal oracle request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return RawResult{}, appErrors.Wrap(err, appErrors.ErrCodeInternal, "build oracle request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, c.std, operation)
}

func (c *Client) do(req *http.Request, hc *http.Client, operation string) (RawResult, error) {
	start := time.Now()
	resp, err := hc.Do(req)
	if c.metrics != nil {
		c.metrics.OracleDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		appErr := c.classifyTransport(err)
		c.observe(operation, appErr)
		c.log.Warn("oracle call failed",
			logging.String("operation", operation),
			logging.Elapsed(start),
			logging.Err(appErr))
		return RawResult{}, appErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		appErr := c.classifyTransport(err)
		c.observe(operation, appErr)
		return RawResult{}, appErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := appErrors.New(appErrors.ErrCodeOracleBadResponse, "oracle returned non-success status").
			WithDetail("status=" + resp.Status)
		c.observe(operation, appErr)
		c.log.Warn("oracle returned error status",
			logging.String("operation", operation),
			logging.Int("status", resp.StatusCode),
			logging.Elapsed(start))
		return RawResult{}, appErr
	}

	c.observe(operation, nil)
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return RawResult{Empty: true}, nil
	}
	return RawResult{Body: body}, nil
}

// classifyTransport maps a transport error to an oracle error code: deadline
// expiry is a timeout, anything else (refused connection, DNS, TLS, reset) is
// unavailability.
func (c *Client) classifyTransport(err error) *appErrors.AppError {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return appErrors.Wrap(err, appErrors.ErrCodeOracleTimeout, "oracle call timed out")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return appErrors.Wrap(err, appErrors.ErrCodeOracleTimeout, "oracle call timed out")
	}
	return appErrors.Wrap(err, appErrors.ErrCodeOracleUnavailable, "oracle unreachable")
}

func (c *Client) observe(operation string, err *appErrors.AppError) {
	if c.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		switch err.Code {
		case appErrors.ErrCodeOracleTimeout:
			outcome = "timeout"
		case appErrors.ErrCodeOracleUnavailable:
			outcome = "unavailable"
		default:
			outcome = "bad_response"
		}
	}
	c.metrics.OracleCalls.WithLabelValues(operation, outcome).Inc()
}
