package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestComputeAvailability(t *testing.T) {
	tests := []struct {
		name        string
		capacity    *int
		registered  int
		manualSales int
		want        Availability
	}{
		{
			name:     "no capacity means unlimited",
			capacity: nil, registered: 500, manualSales: 100,
			want: Availability{Unlimited: true, Status: CapacityAvailable},
		},
		{
			name:     "plenty of room",
			capacity: intPtr(100), registered: 10, manualSales: 5,
			want: Availability{Remaining: 85, Status: CapacityAvailable},
		},
		{
			name:     "almost full at five",
			capacity: intPtr(50), registered: 40, manualSales: 5,
			want: Availability{Remaining: 5, Status: CapacityAlmostFull},
		},
		{
			name:     "almost full at one",
			capacity: intPtr(10), registered: 9, manualSales: 0,
			want: Availability{Remaining: 1, Status: CapacityAlmostFull},
		},
		{
			name:     "exactly full",
			capacity: intPtr(50), registered: 50, manualSales: 0,
			want: Availability{Remaining: 0, Status: CapacityFull},
		},
		{
			name:     "oversold clamps to zero",
			capacity: intPtr(50), registered: 48, manualSales: 10,
			want: Availability{Remaining: 0, Status: CapacityFull},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeAvailability(tt.capacity, tt.registered, tt.manualSales))
		})
	}
}

// remaining = max(0, C-R-M) for all non-negative inputs, and the same inputs
// always produce the same output.
func TestComputeAvailabilityProperty(t *testing.T) {
	for c := 0; c <= 60; c += 3 {
		for r := 0; r <= 60; r += 5 {
			for m := 0; m <= 20; m += 4 {
				got := ComputeAvailability(intPtr(c), r, m)

				want := c - r - m
				if want < 0 {
					want = 0
				}
				assert.Equal(t, want, got.Remaining, "C=%d R=%d M=%d", c, r, m)
				assert.False(t, got.Unlimited)
				assert.GreaterOrEqual(t, got.Remaining, 0)

				switch {
				case want == 0:
					assert.Equal(t, CapacityFull, got.Status)
				case want <= 5:
					assert.Equal(t, CapacityAlmostFull, got.Status)
				default:
					assert.Equal(t, CapacityAvailable, got.Status)
				}
			}
		}
	}
}
