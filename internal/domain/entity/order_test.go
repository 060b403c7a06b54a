package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, OrderStatusInProgress.IsValid())
	assert.True(t, OrderStatusCompleted.IsValid())
	assert.True(t, OrderStatusCancelled.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrder_IsParticipant(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	businessID := uuid.New()
	order := &Order{CustomerID: customerID, BusinessUserID: businessID}

	assert.True(t, order.IsParticipant(customerID))
	assert.True(t, order.IsParticipant(businessID))
	assert.False(t, order.IsParticipant(uuid.New()))
}

func TestOrder_SnapshotFrom(t *testing.T) {
	t.Parallel()

	detail := &OfferDetail{
		ID:                 uuid.New(),
		OfferType:          "premium",
		Title:              "Logo Design Premium",
		Revisions:          UnlimitedRevisions,
		DeliveryTimeInDays: 5,
		Price:              499.99,
		Features: []*Feature{
			{Description: "Logo design", Position: 0},
			{Description: "Flyer", Position: 1},
		},
	}

	order := &Order{}
	order.SnapshotFrom(detail)

	assert.Equal(t, detail.ID, order.OfferDetailID)
	assert.Equal(t, "Logo Design Premium", order.Title)
	assert.Equal(t, "premium", order.OfferType)
	assert.Equal(t, UnlimitedRevisions, order.Revisions)
	assert.Equal(t, 5, order.DeliveryTimeInDays)
	assert.Equal(t, 499.99, order.Price)
	assert.Equal(t, []string{"Logo design", "Flyer"}, order.Features)

	// Later catalog edits must not leak into the snapshot.
	detail.Price = 1
	detail.Features[0].Description = "changed"
	assert.Equal(t, 499.99, order.Price)
	assert.Equal(t, "Logo design", order.Features[0])
}
