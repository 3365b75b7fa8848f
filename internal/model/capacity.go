package model

// CapacityStatus is the coarse label shown next to the remaining-seats figure.
type CapacityStatus string

const (
	CapacityFull       CapacityStatus = "Full"
	CapacityAlmostFull CapacityStatus = "Almost Full"
	CapacityAvailable  CapacityStatus = "Available"
)

// Availability is the derived, display-only remaining-capacity view. It is
// never persisted.
type Availability struct {
	Unlimited bool           `json:"unlimited"`
	Remaining int            `json:"remaining"`
	Status    CapacityStatus `json:"status"`
}

// ComputeAvailability derives remaining capacity from the event capacity, the
// total registration count, and the admin's manual sales offset.
//
// remaining = max(0, capacity - registered - manualSales). A nil capacity
// means the event is unlimited and no numeric figure applies.
func ComputeAvailability(capacity *int, registered, manualSales int) Availability {
	if capacity == nil {
		return Availability{Unlimited: true, Status: CapacityAvailable}
	}
	remaining := *capacity - registered - manualSales
	if remaining < 0 {
		remaining = 0
	}

	status := CapacityAvailable
	switch {
	case remaining == 0:
		status = CapacityFull
	case remaining <= 5:
		status = CapacityAlmostFull
	}
	return Availability{Remaining: remaining, Status: status}
}
