package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-identity/internal/domain"
)

func TestReconcile(t *testing.T) {
	t.Parallel()

	claim := &FederatedClaim{
		FederatedID:    "google-sub-123",
		Email:          "shopper@example.com",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		ProfilePicture: "https://img.example.com/ada.png",
	}

	t.Run("no record creates one", func(t *testing.T) {
		t.Parallel()
		decision, err := Reconcile(claim, nil)
		require.NoError(t, err)
		assert.Equal(t, OutcomeCreated, decision.Outcome)

		user := decision.User
		require.NotNil(t, user)
		assert.Equal(t, "Ada", user.FirstName)
		assert.Equal(t, "Lovelace", user.LastName)
		assert.Equal(t, "shopper@example.com", user.Email)
		assert.Equal(t, "google-sub-123", user.FederatedID)
		assert.True(t, user.IsFederatedUser)
		assert.Equal(t, "https://img.example.com/ada.png", user.ProfilePicture)
		require.NotEmpty(t, user.PasswordHash)
	})

	t.Run("placeholder password never verifies", func(t *testing.T) {
		t.Parallel()
		decision, err := Reconcile(claim, nil)
		require.NoError(t, err)

		for _, guess := range []string{"", "password", "shopper@example.com", "google-sub-123"} {
			assert.False(t, CheckPassword(guess, decision.User.PasswordHash))
		}
	})

	t.Run("existing unlinked record gets linked", func(t *testing.T) {
		t.Parallel()
		existing := &domain.User{
			ID:           7,
			FirstName:    "Augusta",
			LastName:     "King",
			Email:        "shopper@example.com",
			PasswordHash: "$stored",
		}

		decision, err := Reconcile(claim, existing)
		require.NoError(t, err)
		assert.Equal(t, OutcomeLinked, decision.Outcome)
		assert.Same(t, existing, decision.User)
		assert.Equal(t, "google-sub-123", existing.FederatedID)
		assert.True(t, existing.IsFederatedUser)

		// only the federated fields change
		assert.Equal(t, "Augusta", existing.FirstName)
		assert.Equal(t, "King", existing.LastName)
		assert.Equal(t, "$stored", existing.PasswordHash)
		assert.Empty(t, existing.ProfilePicture)
	})

	t.Run("already linked record is untouched", func(t *testing.T) {
		t.Parallel()
		existing := &domain.User{
			ID:              7,
			Email:           "shopper@example.com",
			FederatedID:     "google-sub-OLD",
			IsFederatedUser: true,
		}

		decision, err := Reconcile(claim, existing)
		require.NoError(t, err)
		assert.Equal(t, OutcomeUnchanged, decision.Outcome)
		assert.Equal(t, "google-sub-OLD", decision.User.FederatedID)
	})
}
