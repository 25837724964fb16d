package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := New(ErrCodeJobNotFound, "job 42 not found")
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeJobNotFound, err.Code)
	assert.Equal(t, "[JOB_001] job 42 not found", err.Error())
	assert.NotEmpty(t, err.Stack)
}

func TestErrorIncludesDetail(t *testing.T) {
	err := New(ErrCodeDBQueryError, "query failed").WithDetail("table=recommendations")
	assert.Equal(t, "[COMMON_021] query failed: table=recommendations", err.Error())
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeDBQueryError, "should vanish"))
}

func TestWrapPreservesChain(t *testing.T) {
	root := stderrors.New("connection reset")
	mid := Wrap(root, ErrCodeOracleUnavailable, "oracle call failed")
	top := Wrap(mid, ErrCodeScreeningFailed, "screening aborted")

	assert.True(t, stderrors.Is(top, root))
	assert.True(t, IsCode(top, ErrCodeOracleUnavailable))
	assert.True(t, IsCode(top, ErrCodeScreeningFailed))
	assert.False(t, IsCode(top, ErrCodeJobNotFound))
}

func TestWrapWithUnknownCodeKeepsOriginal(t *testing.T) {
	inner := New(ErrCodeResumeNotFound, "resume missing")
	outer := Wrap(inner, ErrCodeUnknown, "adding context")
	assert.Equal(t, ErrCodeResumeNotFound, outer.Code)
}

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{NotFound("gone"), true},
		{New(ErrCodeJobNotFound, "x"), true},
		{New(ErrCodeResumeNotFound, "x"), true},
		{New(ErrCodeNoPrimaryResume, "x"), true},
		{New(ErrCodeJobSeekerNotFound, "x"), true},
		{New(ErrCodeRecommendationNotFound, "x"), true},
		{fmt.Errorf("wrapped: %w", New(ErrCodeJobNotFound, "x")), true},
		{New(ErrCodeInternal, "boom"), false},
		{stderrors.New("plain"), false},
		{nil, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsNotFound(tc.err), "err=%v", tc.err)
	}
}

func TestIsOracleFailure(t *testing.T) {
	assert.True(t, IsOracleFailure(New(ErrCodeOracleTimeout, "slow")))
	assert.True(t, IsOracleFailure(Wrap(New(ErrCodeOracleBadResponse, "bad json"), ErrCodeScreeningFailed, "ctx")))
	assert.False(t, IsOracleFailure(New(ErrCodeDBQueryError, "db")))
	assert.False(t, IsOracleFailure(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeOK, GetCode(nil))
	assert.Equal(t, ErrCodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrCodeOracleTimeout, GetCode(New(ErrCodeOracleTimeout, "x")))
	assert.Equal(t, ErrCodeValidation, GetCode(fmt.Errorf("w: %w", Validation("missing field"))))
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrCodeJobNotFound.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, ErrCodeNoPrimaryResume.HTTPStatus())
	assert.Equal(t, http.StatusGatewayTimeout, ErrCodeOracleTimeout.HTTPStatus())
	assert.Equal(t, http.StatusBadGateway, ErrCodeOracleUnavailable.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, ErrCodeValidation.HTTPStatus())
	// Unmapped codes fall through to 500.
	assert.Equal(t, http.StatusInternalServerError, ErrCodeDBQueryError.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, ErrorCode("NOPE_001").HTTPStatus())
}

func TestDefaultMessage(t *testing.T) {
	assert.Equal(t, "AI service unavailable", ErrCodeOracleUnavailable.DefaultMessage())
	assert.Equal(t, "unknown error", ErrorCode("NOPE_001").DefaultMessage())
}

func TestWithDetailDoesNotMutateOriginal(t *testing.T) {
	orig := New(ErrCodeInternal, "boom")
	withDetail := orig.WithDetail("extra")
	assert.Empty(t, orig.Detail)
	assert.Equal(t, "extra", withDetail.Detail)
}

func TestWithCauseOnNil(t *testing.T) {
	var e *AppError
	assert.Nil(t, e.WithCause(stderrors.New("x")))
	assert.Nil(t, e.WithDetail("x"))
}
