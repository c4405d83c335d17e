package authz

import (
	"context"
	"errors"
	"strings"
)

// ErrDenied indicates the caller may not act on the resource.
var ErrDenied = errors.New("access denied")

// Resource describes the thing being accessed. Ownership is the only
// attribute current policies look at.
type Resource struct {
	Kind    string
	ID      string
	OwnerID string
}

// Authorizer decides whether a caller may act on a resource. Services
// check once per operation instead of sprinkling ad hoc owner
// comparisons through every handler.
type Authorizer interface {
	CanAccess(ctx context.Context, callerID string, res Resource) error
}

// OwnerOnly allows access only to the resource owner.
type OwnerOnly struct{}

// CanAccess returns ErrDenied unless callerID matches the owner.
func (OwnerOnly) CanAccess(ctx context.Context, callerID string, res Resource) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	callerID = strings.TrimSpace(callerID)
	if callerID == "" || callerID != res.OwnerID {
		return ErrDenied
	}
	return nil
}

var _ Authorizer = OwnerOnly{}
