package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffer_MinPrice(t *testing.T) {
	t.Parallel()

	t.Run("no details returns zero", func(t *testing.T) {
		t.Parallel()

		offer := &Offer{}

		assert.Equal(t, 0.0, offer.MinPrice())
	})

	t.Run("returns lowest price across details", func(t *testing.T) {
		t.Parallel()

		offer := &Offer{
			Details: []*OfferDetail{
				{Price: 150},
				{Price: 49.99},
				{Price: 300},
			},
		}

		assert.Equal(t, 49.99, offer.MinPrice())
	})

	t.Run("single detail wins even at zero", func(t *testing.T) {
		t.Parallel()

		offer := &Offer{
			Details: []*OfferDetail{{Price: 0}},
		}

		assert.Equal(t, 0.0, offer.MinPrice())
	})
}

func TestOffer_MinDeliveryTime(t *testing.T) {
	t.Parallel()

	t.Run("no details returns zero", func(t *testing.T) {
		t.Parallel()

		offer := &Offer{}

		assert.Equal(t, 0, offer.MinDeliveryTime())
	})

	t.Run("returns shortest delivery time", func(t *testing.T) {
		t.Parallel()

		offer := &Offer{
			Details: []*OfferDetail{
				{DeliveryTimeInDays: 14},
				{DeliveryTimeInDays: 3},
				{DeliveryTimeInDays: 7},
			},
		}

		assert.Equal(t, 3, offer.MinDeliveryTime())
	})
}

func TestCleanFeatureList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      []string
		expected []string
	}{
		{
			name:     "trims whitespace",
			raw:      []string{"  Logo design ", "Source files"},
			expected: []string{"Logo design", "Source files"},
		},
		{
			name:     "drops blank entries",
			raw:      []string{"", "   ", "Revisions included", ""},
			expected: []string{"Revisions included"},
		},
		{
			name:     "preserves survivor order",
			raw:      []string{"b", "", "a", "c"},
			expected: []string{"b", "a", "c"},
		},
		{
			name:     "nil input yields empty list",
			raw:      nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, CleanFeatureList(tt.raw))
		})
	}
}

func TestOfferDetail_FeatureDescriptions(t *testing.T) {
	t.Parallel()

	detail := &OfferDetail{
		Features: []*Feature{
			{Description: "Logo design", Position: 0},
			{Description: "Visitenkarte", Position: 1},
		},
	}

	assert.Equal(t, []string{"Logo design", "Visitenkarte"}, detail.FeatureDescriptions())
}
