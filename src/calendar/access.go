package calendar

import (
	"context"
	"fmt"
)

// AccessStatus is the authorization state of a store.
type AccessStatus string

const (
	AccessAuthorized    AccessStatus = "authorized"
	AccessFullAccess    AccessStatus = "full_access"
	AccessWriteOnly     AccessStatus = "write_only"
	AccessNotDetermined AccessStatus = "not_determined"
	AccessDenied        AccessStatus = "denied"
	AccessRestricted    AccessStatus = "restricted"
)

// AccessRequester asks for access when the status is not yet determined.
type AccessRequester func(ctx context.Context) (bool, error)

// Access decides whether a store may be written to.
type Access struct {
	Status  AccessStatus
	Request AccessRequester
}

// Ensure returns true when writes are allowed. Denied and restricted
// statuses, and any status it does not know, fail with ErrUnauthorized.
func (a Access) Ensure(ctx context.Context) (bool, error) {
	switch a.Status {
	case AccessAuthorized, AccessFullAccess, AccessWriteOnly:
		return true, nil
	case AccessNotDetermined:
		if a.Request == nil {
			return false, nil
		}
		granted, err := a.Request(ctx)
		if err != nil {
			return false, fmt.Errorf("request access: %w", err)
		}
		return granted, nil
	default:
		return false, ErrUnauthorized
	}
}
