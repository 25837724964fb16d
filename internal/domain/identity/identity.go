// Package identity carries the authenticated caller through the application
// layer.  Services receive an Identity explicitly instead of reading global
// auth state, so ownership checks are visible at every call site.
package identity

import "github.com/google/uuid"

// Role is the caller's role claim.
type Role string

const (
	RoleJobSeeker Role = "JOB_SEEKER"
	RoleRecruiter Role = "RECRUITER"
	RoleAdmin     Role = "ADMIN"
)

// Identity is the authenticated caller.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

// IsRecruiter reports whether the caller may operate on job postings.
func (i Identity) IsRecruiter() bool {
	return i.Role == RoleRecruiter || i.Role == RoleAdmin
}

// CanActFor reports whether the caller may act on the given job seeker's
// resources.  Admins may act for anyone.
func (i Identity) CanActFor(jobSeekerID uuid.UUID) bool {
	return i.UserID == jobSeekerID || i.Role == RoleAdmin
}
