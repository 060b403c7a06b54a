// Package authz implements the authorization gate: a pure decision function
// consulted by every mutating operation before it touches the store.
package authz

import (
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"

	"github.com/google/uuid"
)

// Actor is the identity a request acts under. The zero value is anonymous.
type Actor struct {
	UserID        uuid.UUID
	Type          entity.ProfileType
	Authenticated bool
}

// Anonymous returns an unauthenticated actor.
func Anonymous() Actor {
	return Actor{}
}

// ForUser returns an authenticated actor with the given identity and role.
func ForUser(userID uuid.UUID, profileType entity.ProfileType) Actor {
	return Actor{UserID: userID, Type: profileType, Authenticated: true}
}

// Action is the operation the actor wants to perform on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Kind identifies the resource family a decision is about.
type Kind string

const (
	KindOffer       Kind = "offer"
	KindOfferDetail Kind = "offer_detail"
	KindOrder       Kind = "order"
	KindReview      Kind = "review"
	KindProfile     Kind = "profile"
	KindStats       Kind = "stats"
)

// Resource is the reference a decision is evaluated against. OwnerID is the
// owning identity of an existing resource (offer creator, reviewer, profile
// owner) and is ignored for creates. Participants carries the two parties of
// an order.
type Resource struct {
	Kind         Kind
	OwnerID      uuid.UUID
	Participants []uuid.UUID
}

// Decision is the outcome of a gate check. Reason is nil when allowed and
// carries exactly ErrUnauthenticated or ErrForbidden otherwise; callers must
// preserve that distinction in responses.
type Decision struct {
	Allowed bool
	Reason  error
}

func allow() Decision {
	return Decision{Allowed: true}
}

func denyUnauthenticated() Decision {
	return Decision{Reason: domainerrors.ErrUnauthenticated}
}

func denyForbidden() Decision {
	return Decision{Reason: domainerrors.ErrForbidden}
}

// Can decides whether the actor may perform the action on the resource.
// Rules are evaluated in precedence order: authentication first, then role
// gates for creation, then ownership/participation for existing resources.
func Can(actor Actor, action Action, res Resource) Decision {
	// Anonymous actors may only read public resource families.
	if !actor.Authenticated {
		if action == ActionRead && isPubliclyReadable(res.Kind) {
			return allow()
		}

		return denyUnauthenticated()
	}

	if action == ActionRead {
		return allow()
	}

	switch res.Kind {
	case KindOffer, KindOfferDetail:
		if action == ActionCreate {
			if actor.Type != entity.ProfileTypeBusiness {
				return denyForbidden()
			}

			return allow()
		}
		// Update/delete on an existing offer or detail is owner-only. Other
		// business accounts are denied as forbidden, not as not-found.
		if actor.UserID != res.OwnerID {
			return denyForbidden()
		}

		return allow()

	case KindOrder:
		if action == ActionCreate {
			if actor.Type != entity.ProfileTypeCustomer {
				return denyForbidden()
			}

			return allow()
		}
		// Status changes are reserved for the order's two participants.
		for _, p := range res.Participants {
			if actor.UserID == p {
				return allow()
			}
		}

		return denyForbidden()

	case KindReview:
		if action == ActionCreate {
			if actor.Type != entity.ProfileTypeCustomer {
				return denyForbidden()
			}

			return allow()
		}
		// Only the reviewer may touch an existing review.
		if actor.UserID != res.OwnerID {
			return denyForbidden()
		}

		return allow()

	case KindProfile:
		// Profile mutation is self-service only.
		if actor.UserID != res.OwnerID {
			return denyForbidden()
		}

		return allow()

	default:
		return denyForbidden()
	}
}

func isPubliclyReadable(kind Kind) bool {
	switch kind {
	case KindOffer, KindOfferDetail, KindReview, KindProfile, KindStats:
		return true
	default:
		return false
	}
}
