package auth

import (
	"fmt"

	"github.com/google/uuid"

	"storefront-identity/internal/domain"
)

// ReconcileOutcome tags the single account-state decision made for a verified
// federated claim.
type ReconcileOutcome int

const (
	// OutcomeCreated means no record existed for the claim's email; Decision.User
	// is a new record to persist.
	OutcomeCreated ReconcileOutcome = iota
	// OutcomeLinked means an existing record gained the claim's federated id;
	// the link must be persisted.
	OutcomeLinked
	// OutcomeUnchanged means the existing record already carries a federated id
	// and is used as-is.
	OutcomeUnchanged
)

// Decision is the reconciler's result: the record to use and what to do with it.
type Decision struct {
	Outcome ReconcileOutcome
	User    *domain.User
}

// Reconcile turns a verified claim plus the store lookup result for its email
// (existing is nil when not found) into exactly one decision. Email is the
// join key: a claim never creates a second record for an email that already
// has one, and an existing federated id is never overwritten.
//
// Created records get a password hash of a fresh random value. The record then
// satisfies the schema's password requirement without that password ever being
// usable for a login; this mirrors the upstream behavior rather than a
// nullable-credential state.
func Reconcile(claim *FederatedClaim, existing *domain.User) (Decision, error) {
	if existing != nil {
		if existing.FederatedID != "" {
			return Decision{Outcome: OutcomeUnchanged, User: existing}, nil
		}
		existing.FederatedID = claim.FederatedID
		existing.IsFederatedUser = true
		return Decision{Outcome: OutcomeLinked, User: existing}, nil
	}

	placeholder, err := HashPassword(uuid.NewString())
	if err != nil {
		return Decision{}, fmt.Errorf("placeholder credential: %w", err)
	}
	return Decision{
		Outcome: OutcomeCreated,
		User: &domain.User{
			FirstName:       claim.FirstName,
			LastName:        claim.LastName,
			Email:           claim.Email,
			PasswordHash:    placeholder,
			FederatedID:     claim.FederatedID,
			IsFederatedUser: true,
			ProfilePicture:  claim.ProfilePicture,
		},
	}, nil
}
