// Package records manages the lifecycle of saved valuations: saving the
// session's current analysis, listing an owner's records, and deleting them.
package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/db"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/session"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/valuation"
)

// ErrNotConfirmed is returned when a delete arrives without the confirmation
// flag. Deletion is never performed optimistically.
var ErrNotConfirmed = errors.New("deletion requires confirmation")

// ErrNotFound is returned when the record does not exist or belongs to
// another owner. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("valuation record not found")

// PersistenceError wraps a storage failure. The session is left untouched
// when one occurs, so the user can retry the save.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// Store is the persistence surface the controller needs.
type Store interface {
	InsertValuation(ctx context.Context, ownerID uuid.UUID, companyName string, amount float64, swot string) (*db.ValuationRecord, error)
	ListValuationsByOwner(ctx context.Context, ownerID uuid.UUID) ([]db.ValuationRecord, error)
	DeleteValuation(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
}

// Controller coordinates sessions and the valuation store.
type Controller struct {
	store    Store
	sessions *session.Manager
}

func NewController(store Store, sessions *session.Manager) *Controller {
	return &Controller{store: store, sessions: sessions}
}

// Save persists the owner's current analysis at the given growth assumption.
// The valuation amount and SWOT line are computed at save time, so the record
// reflects the slider position the user chose. On success the session is
// cleared; on failure it is preserved for a retry.
func (c *Controller) Save(ctx context.Context, ownerID uuid.UUID, growthPercent float64) (*db.ValuationRecord, error) {
	sess := c.sessions.Get(ownerID)
	profile, ok := sess.Profile()
	if !ok {
		return nil, session.ErrNoContext
	}

	growth := valuation.ClampGrowth(growthPercent)
	amount := valuation.Estimate(profile, growth)
	swot := valuation.FormatSWOT(profile)

	rec, err := c.store.InsertValuation(ctx, ownerID, profile.CompanyName, amount, swot)
	if err != nil {
		return nil, &PersistenceError{Op: "save", Cause: err}
	}

	sess.Clear()
	return rec, nil
}

// List returns the owner's saved valuations, newest first.
func (c *Controller) List(ctx context.Context, ownerID uuid.UUID) ([]db.ValuationRecord, error) {
	records, err := c.store.ListValuationsByOwner(ctx, ownerID)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Cause: err}
	}
	return records, nil
}

// Delete removes one of the owner's records. confirmed must be true; a
// record owned by someone else reports ErrNotFound.
func (c *Controller) Delete(ctx context.Context, ownerID, recordID uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	deleted, err := c.store.DeleteValuation(ctx, recordID, ownerID)
	if err != nil {
		return &PersistenceError{Op: "delete", Cause: err}
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
