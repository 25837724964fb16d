package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handler gin.HandlerFunc, method, path, target string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, path, handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestRespondErrorMapsAppErrorStatus(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		respondError(c, appErrors.New(appErrors.ErrCodeJobNotFound, ""))
	}, http.MethodGet, "/x", "/x")

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "JOB_001", env.Code)
	assert.Equal(t, "job posting not found", env.Message)
}

func TestRespondErrorHidesPlainErrors(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		respondError(c, assert.AnError)
	}, http.MethodGet, "/x", "/x")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, string(appErrors.ErrCodeInternal), env.Code)
	assert.NotContains(t, env.Message, assert.AnError.Error())
}

func TestRespondErrorDoesNotLeakDetail(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		respondError(c, appErrors.New(appErrors.ErrCodeDBQueryError, "query failed").
			WithDetail("SELECT * FROM resumes"))
	}, http.MethodGet, "/x", "/x")

	assert.NotContains(t, w.Body.String(), "SELECT")
}

func TestPathUUIDRejectsMalformedParam(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		if _, ok := pathUUID(c, "jobId"); !ok {
			return
		}
		respondOK(c, http.StatusOK, nil)
	}, http.MethodGet, "/jobs/:jobId", "/jobs/not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, string(appErrors.ErrCodeInvalidParam), env.Code)
}

func TestParseUUIDsRejectsFirstBadEntry(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		ids, ok := parseUUIDs(c, []string{
			"0b9f7d22-8c3e-4e0f-9f6a-1f2d3c4b5a69", "nope",
		})
		if !ok {
			return
		}
		respondOK(c, http.StatusOK, ids)
	}, http.MethodPost, "/x", "/x")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMustIdentityWithoutAuthMiddleware(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		if _, ok := mustIdentity(c); !ok {
			return
		}
		respondOK(c, http.StatusOK, nil)
	}, http.MethodGet, "/x", "/x")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
