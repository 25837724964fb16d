package oracle

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/TalentMatch-AI/internal/config"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.OracleConfig{
		BaseURL:        srv.URL,
		ConnectTimeout: 2 * time.Second,
		ReadTimeout:    2 * time.Second,
		ParseTimeout:   2 * time.Second,
	}
	return New(cfg, logging.Nop(), nil), srv
}

func TestScreenCandidatesSuccess(t *testing.T) {
	var gotPath string
	var gotBody []byte
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"c1":{"matchScore":88.5}}`))
	}))

	res, err := c.ScreenCandidates(context.Background(), ScreenRequest{
		Requirements: "senior Go engineer",
		Resumes:      map[string]string{"c1": "ten years of Go"},
	})
	require.NoError(t, err)
	assert.False(t, res.Empty)
	assert.Equal(t, "/api/ai/screen-candidates", gotPath)
	assert.Contains(t, string(gotBody), "senior Go engineer")

	var decoded ScreenResponse
	require.NoError(t, res.Decode(&decoded))
	require.Len(t, decoded, 1)
	entry, ok := decoded["c1"]
	require.True(t, ok)
	assert.Equal(t, 88.5, *entry.MatchScore)
	assert.Nil(t, entry.Rationale)
}

func TestEmptyResultMarker(t *testing.T) {
	t.Run("204", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		res, err := c.RecommendJobs(context.Background(), RecommendJobsRequest{})
		require.NoError(t, err)
		assert.True(t, res.Empty)
	})
	t.Run("blank body", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("  \n"))
		}))
		res, err := c.RecommendJobs(context.Background(), RecommendJobsRequest{})
		require.NoError(t, err)
		assert.True(t, res.Empty)
	})
}

func TestDecodeOnEmptyResultFails(t *testing.T) {
	var resp ScreenResponse
	err := RawResult{Empty: true}.Decode(&resp)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeOracleBadResponse))
}

func TestNonSuccessStatusIsBadResponse(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusInternalServerError)
	}))
	_, err := c.PredictFit(context.Background(), PredictFitRequest{})
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeOracleBadResponse))
	assert.True(t, appErrors.IsOracleFailure(err))
}

func TestUnreachableOracleIsUnavailable(t *testing.T) {
	cfg := config.OracleConfig{
		// Reserved TEST-NET address, nothing listens here.
		BaseURL:        "http://127.0.0.1:1",
		ConnectTimeout: 500 * time.Millisecond,
		ReadTimeout:    500 * time.Millisecond,
		ParseTimeout:   500 * time.Millisecond,
	}
	c := New(cfg, logging.Nop(), nil)
	_, err := c.SkillGap(context.Background(), SkillGapRequest{})
	require.Error(t, err)
	assert.True(t, appErrors.IsOracleFailure(err))
}

func TestSlowOracleIsTimeout(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(3 * time.Second)
	}))
	_, err := c.CareerPath(context.Background(), CareerPathRequest{})
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeOracleTimeout))
}

func TestSingleAttemptNoRetry(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	_, err := c.Cluster(context.Background(), ClusterRequest{})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestParseResumeSendsMultipart(t *testing.T) {
	var contentType, fileName, fileBody string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		fileName = hdr.Filename
		buf, _ := io.ReadAll(f)
		fileBody = string(buf)
		_, _ = w.Write([]byte(`{"skills":["Go"]}`))
	}))

	res, err := c.ParseResume(context.Background(), "cv.pdf", strings.NewReader("resume bytes"))
	require.NoError(t, err)
	assert.False(t, res.Empty)
	assert.Contains(t, contentType, "multipart/form-data")
	assert.Equal(t, "cv.pdf", fileName)
	assert.Equal(t, "resume bytes", fileBody)
}

func TestMalformedJSONDecodeFails(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"c1": {`))
	}))
	res, err := c.ScreenCandidates(context.Background(), ScreenRequest{})
	require.NoError(t, err)
	var decoded ScreenResponse
	err = res.Decode(&decoded)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeOracleBadResponse))
}
