package authz

import (
	"testing"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCan_Anonymous(t *testing.T) {
	t.Parallel()

	anon := Anonymous()

	t.Run("may read public kinds", func(t *testing.T) {
		t.Parallel()

		for _, kind := range []Kind{KindOffer, KindOfferDetail, KindReview, KindProfile, KindStats} {
			decision := Can(anon, ActionRead, Resource{Kind: kind})

			assert.True(t, decision.Allowed, "kind %s should be publicly readable", kind)
			assert.NoError(t, decision.Reason)
		}
	})

	t.Run("may not read orders", func(t *testing.T) {
		t.Parallel()

		decision := Can(anon, ActionRead, Resource{Kind: KindOrder})

		assert.False(t, decision.Allowed)
		assert.ErrorIs(t, decision.Reason, domainerrors.ErrUnauthenticated)
	})

	t.Run("any write is unauthenticated, not forbidden", func(t *testing.T) {
		t.Parallel()

		for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
			decision := Can(anon, action, Resource{Kind: KindOffer})

			assert.False(t, decision.Allowed)
			assert.ErrorIs(t, decision.Reason, domainerrors.ErrUnauthenticated)
		}
	})
}

func TestCan_OfferRules(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	business := ForUser(ownerID, entity.ProfileTypeBusiness)
	otherBusiness := ForUser(uuid.New(), entity.ProfileTypeBusiness)
	customer := ForUser(uuid.New(), entity.ProfileTypeCustomer)

	t.Run("business may create offers", func(t *testing.T) {
		t.Parallel()

		decision := Can(business, ActionCreate, Resource{Kind: KindOffer})

		assert.True(t, decision.Allowed)
	})

	t.Run("customer may not create offers", func(t *testing.T) {
		t.Parallel()

		decision := Can(customer, ActionCreate, Resource{Kind: KindOffer})

		assert.False(t, decision.Allowed)
		assert.ErrorIs(t, decision.Reason, domainerrors.ErrForbidden)
	})

	t.Run("owner may update and delete", func(t *testing.T) {
		t.Parallel()

		res := Resource{Kind: KindOffer, OwnerID: ownerID}

		assert.True(t, Can(business, ActionUpdate, res).Allowed)
		assert.True(t, Can(business, ActionDelete, res).Allowed)
	})

	t.Run("other business is forbidden on existing offers", func(t *testing.T) {
		t.Parallel()

		res := Resource{Kind: KindOffer, OwnerID: ownerID}
		decision := Can(otherBusiness, ActionUpdate, res)

		assert.False(t, decision.Allowed)
		assert.ErrorIs(t, decision.Reason, domainerrors.ErrForbidden)
	})

	t.Run("detail ownership follows the parent offer", func(t *testing.T) {
		t.Parallel()

		res := Resource{Kind: KindOfferDetail, OwnerID: ownerID}

		assert.True(t, Can(business, ActionDelete, res).Allowed)
		assert.False(t, Can(otherBusiness, ActionDelete, res).Allowed)
	})
}

func TestCan_OrderRules(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	businessID := uuid.New()
	customer := ForUser(customerID, entity.ProfileTypeCustomer)
	business := ForUser(businessID, entity.ProfileTypeBusiness)
	outsider := ForUser(uuid.New(), entity.ProfileTypeCustomer)

	t.Run("only customers may place orders", func(t *testing.T) {
		t.Parallel()

		assert.True(t, Can(customer, ActionCreate, Resource{Kind: KindOrder}).Allowed)

		decision := Can(business, ActionCreate, Resource{Kind: KindOrder})
		assert.False(t, decision.Allowed)
		assert.ErrorIs(t, decision.Reason, domainerrors.ErrForbidden)
	})

	t.Run("both participants may update the order", func(t *testing.T) {
		t.Parallel()

		res := Resource{Kind: KindOrder, Participants: []uuid.UUID{customerID, businessID}}

		assert.True(t, Can(customer, ActionUpdate, res).Allowed)
		assert.True(t, Can(business, ActionUpdate, res).Allowed)
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		t.Parallel()

		res := Resource{Kind: KindOrder, Participants: []uuid.UUID{customerID, businessID}}
		decision := Can(outsider, ActionUpdate, res)

		assert.False(t, decision.Allowed)
		assert.ErrorIs(t, decision.Reason, domainerrors.ErrForbidden)
	})
}

func TestCan_ReviewRules(t *testing.T) {
	t.Parallel()

	reviewerID := uuid.New()
	reviewer := ForUser(reviewerID, entity.ProfileTypeCustomer)
	business := ForUser(uuid.New(), entity.ProfileTypeBusiness)
	otherCustomer := ForUser(uuid.New(), entity.ProfileTypeCustomer)

	t.Run("only customers may create reviews", func(t *testing.T) {
		t.Parallel()

		assert.True(t, Can(reviewer, ActionCreate, Resource{Kind: KindReview}).Allowed)

		decision := Can(business, ActionCreate, Resource{Kind: KindReview})
		assert.False(t, decision.Allowed)
		assert.ErrorIs(t, decision.Reason, domainerrors.ErrForbidden)
	})

	t.Run("only the reviewer may touch an existing review", func(t *testing.T) {
		t.Parallel()

		res := Resource{Kind: KindReview, OwnerID: reviewerID}

		assert.True(t, Can(reviewer, ActionUpdate, res).Allowed)
		assert.True(t, Can(reviewer, ActionDelete, res).Allowed)
		assert.False(t, Can(otherCustomer, ActionUpdate, res).Allowed)
		assert.False(t, Can(otherCustomer, ActionDelete, res).Allowed)
	})
}

func TestCan_ProfileRules(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	owner := ForUser(ownerID, entity.ProfileTypeCustomer)
	other := ForUser(uuid.New(), entity.ProfileTypeCustomer)

	t.Run("self-service update allowed", func(t *testing.T) {
		t.Parallel()

		decision := Can(owner, ActionUpdate, Resource{Kind: KindProfile, OwnerID: ownerID})

		assert.True(t, decision.Allowed)
	})

	t.Run("foreign profile update forbidden", func(t *testing.T) {
		t.Parallel()

		decision := Can(other, ActionUpdate, Resource{Kind: KindProfile, OwnerID: ownerID})

		assert.False(t, decision.Allowed)
		assert.ErrorIs(t, decision.Reason, domainerrors.ErrForbidden)
	})
}

func TestCan_AuthenticatedRead(t *testing.T) {
	t.Parallel()

	actor := ForUser(uuid.New(), entity.ProfileTypeCustomer)

	// Reads are unrestricted once authenticated; order visibility is narrowed
	// by the use case, not the gate.
	for _, kind := range []Kind{KindOffer, KindOfferDetail, KindOrder, KindReview, KindProfile, KindStats} {
		decision := Can(actor, ActionRead, Resource{Kind: kind})

		assert.True(t, decision.Allowed, "kind %s", kind)
	}
}
