// Package repositories implements the domain repository interfaces on top of
// PostgreSQL via pgx.
package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"

	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// mapScanError converts pgx scan errors into AppErrors, turning ErrNoRows
// into the supplied not-found code.
func mapScanError(err error, notFoundCode appErrors.ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return appErrors.New(notFoundCode, notFoundCode.DefaultMessage())
	}
	return appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, message)
}
