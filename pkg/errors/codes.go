package errors

import "net/http"

// ErrorCode is a typed string identifying an error category.
// Codes are grouped by module prefix so that log aggregation and alerting can
// slice failures per subsystem:
//
//	COMMON_*  cross-cutting (validation, auth, persistence)
//	RES_*     resume management
//	JOB_*     job postings
//	SEEK_*    job-seeker profiles
//	SCR_*     candidate screening and shortlisting
//	REC_*     job recommendation aggregation
//	ORC_*     AI oracle transport and payloads
type ErrorCode string

// Cross-cutting codes.
const (
	ErrCodeOK           ErrorCode = "COMMON_000"
	ErrCodeUnknown      ErrorCode = "COMMON_001"
	ErrCodeInvalidParam ErrorCode = "COMMON_002"
	ErrCodeNotFound     ErrorCode = "COMMON_003"
	ErrCodeUnauthorized ErrorCode = "COMMON_004"
	ErrCodeForbidden    ErrorCode = "COMMON_005"
	ErrCodeInternal     ErrorCode = "COMMON_006"
	ErrCodeConflict     ErrorCode = "COMMON_007"
	ErrCodeTimeout      ErrorCode = "COMMON_008"
	ErrCodeRateLimited  ErrorCode = "COMMON_009"
	ErrCodeValidation   ErrorCode = "COMMON_010"

	// Persistence and infrastructure codes.
	ErrCodeDBConnError    ErrorCode = "COMMON_020"
	ErrCodeDBQueryError   ErrorCode = "COMMON_021"
	ErrCodeDBTxError      ErrorCode = "COMMON_022"
	ErrCodeCacheError     ErrorCode = "COMMON_023"
	ErrCodeLockNotHeld    ErrorCode = "COMMON_024"
	ErrCodeStorageError   ErrorCode = "COMMON_025"
	ErrCodeMessagingError ErrorCode = "COMMON_026"
	ErrCodeConfigError    ErrorCode = "COMMON_027"
)

// Resume management codes.
const (
	ErrCodeResumeNotFound   ErrorCode = "RES_001"
	ErrCodeResumeTooLarge   ErrorCode = "RES_002"
	ErrCodeResumeBadFormat  ErrorCode = "RES_003"
	ErrCodeNoPrimaryResume  ErrorCode = "RES_004"
	ErrCodeResumeParseEmpty ErrorCode = "RES_005"
)

// Job posting codes.
const (
	ErrCodeJobNotFound ErrorCode = "JOB_001"
	ErrCodeJobClosed   ErrorCode = "JOB_002"
	ErrCodeNotJobOwner ErrorCode = "JOB_003"
)

// Job-seeker profile codes.
const (
	ErrCodeJobSeekerNotFound ErrorCode = "SEEK_001"
)

// Screening codes.
const (
	ErrCodeScreeningEmptyPool ErrorCode = "SCR_001"
	ErrCodeScreeningFailed    ErrorCode = "SCR_002"
)

// Recommendation codes.
const (
	ErrCodeRecommendationNotFound ErrorCode = "REC_001"
	ErrCodeRecommendationPersist  ErrorCode = "REC_002"
)

// AI oracle codes.
const (
	// ErrCodeOracleUnavailable indicates the oracle endpoint could not be
	// reached (connection refused, DNS failure, TLS failure).
	ErrCodeOracleUnavailable ErrorCode = "ORC_001"

	// ErrCodeOracleTimeout indicates the connect or read deadline elapsed
	// before the oracle produced a response.
	ErrCodeOracleTimeout ErrorCode = "ORC_002"

	// ErrCodeOracleBadResponse indicates the oracle answered with a non-2xx
	// status or a body that could not be decoded.
	ErrCodeOracleBadResponse ErrorCode = "ORC_003"
)

// errorCodeHTTPStatus maps error codes to the HTTP status returned by the API
// layer.  Codes absent from the map default to 500.
var errorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeOK:           http.StatusOK,
	ErrCodeInvalidParam: http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeTimeout:      http.StatusGatewayTimeout,
	ErrCodeRateLimited:  http.StatusTooManyRequests,

	ErrCodeResumeNotFound:   http.StatusNotFound,
	ErrCodeResumeTooLarge:   http.StatusRequestEntityTooLarge,
	ErrCodeResumeBadFormat:  http.StatusUnsupportedMediaType,
	ErrCodeNoPrimaryResume:  http.StatusNotFound,
	ErrCodeResumeParseEmpty: http.StatusUnprocessableEntity,

	ErrCodeJobNotFound: http.StatusNotFound,
	ErrCodeJobClosed:   http.StatusConflict,
	ErrCodeNotJobOwner: http.StatusForbidden,

	ErrCodeJobSeekerNotFound: http.StatusNotFound,

	ErrCodeScreeningEmptyPool: http.StatusUnprocessableEntity,
	ErrCodeScreeningFailed:    http.StatusBadGateway,

	ErrCodeRecommendationNotFound: http.StatusNotFound,

	ErrCodeOracleUnavailable: http.StatusBadGateway,
	ErrCodeOracleTimeout:     http.StatusGatewayTimeout,
	ErrCodeOracleBadResponse: http.StatusBadGateway,
}

// errorCodeMessage holds the default English message per code, used by the API
// layer when an AppError reaches a handler without a message of its own.
var errorCodeMessage = map[ErrorCode]string{
	ErrCodeOK:           "success",
	ErrCodeUnknown:      "unknown error",
	ErrCodeInvalidParam: "invalid request parameter",
	ErrCodeValidation:   "request validation failed",
	ErrCodeNotFound:     "resource not found",
	ErrCodeUnauthorized: "authentication required",
	ErrCodeForbidden:    "operation not permitted",
	ErrCodeInternal:     "internal server error",
	ErrCodeConflict:     "resource conflict",
	ErrCodeTimeout:      "operation timed out",
	ErrCodeRateLimited:  "too many requests",

	ErrCodeDBConnError:    "database connection failed",
	ErrCodeDBQueryError:   "database query failed",
	ErrCodeDBTxError:      "database transaction failed",
	ErrCodeCacheError:     "cache operation failed",
	ErrCodeLockNotHeld:    "distributed lock not held",
	ErrCodeStorageError:   "object storage operation failed",
	ErrCodeMessagingError: "message publish failed",
	ErrCodeConfigError:    "configuration error",

	ErrCodeResumeNotFound:   "resume not found",
	ErrCodeResumeTooLarge:   "resume file exceeds size limit",
	ErrCodeResumeBadFormat:  "unsupported resume format",
	ErrCodeNoPrimaryResume:  "no parsed primary resume for job seeker",
	ErrCodeResumeParseEmpty: "resume parsing produced no content",

	ErrCodeJobNotFound: "job posting not found",
	ErrCodeJobClosed:   "job posting is closed",
	ErrCodeNotJobOwner: "caller does not own this job posting",

	ErrCodeJobSeekerNotFound: "job seeker not found",

	ErrCodeScreeningEmptyPool: "no candidates with parsed resumes to screen",
	ErrCodeScreeningFailed:    "candidate screening failed",

	ErrCodeRecommendationNotFound: "no recommendations recorded for job seeker",
	ErrCodeRecommendationPersist:  "failed to persist recommendations",

	ErrCodeOracleUnavailable: "AI service unavailable",
	ErrCodeOracleTimeout:     "AI service timed out",
	ErrCodeOracleBadResponse: "AI service returned an invalid response",
}

// HTTPStatus returns the HTTP status code associated with c, defaulting to
// 500 for unmapped codes.
func (c ErrorCode) HTTPStatus() int {
	if s, ok := errorCodeHTTPStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// DefaultMessage returns the default human-readable message for c.
func (c ErrorCode) DefaultMessage() string {
	if m, ok := errorCodeMessage[c]; ok {
		return m
	}
	return errorCodeMessage[ErrCodeUnknown]
}
