package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReview_RatingValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rating int
		valid  bool
	}{
		{name: "lower bound", rating: MinRating, valid: true},
		{name: "upper bound", rating: MaxRating, valid: true},
		{name: "middle", rating: 3, valid: true},
		{name: "zero", rating: 0, valid: false},
		{name: "above upper bound", rating: 6, valid: false},
		{name: "negative", rating: -1, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			review := &Review{Rating: tt.rating}

			assert.Equal(t, tt.valid, review.RatingValid())
		})
	}
}
