package enums

import "fmt"

// ItemStatus tracks where a wishlist item sits in its reservation lifecycle.
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusReserved  ItemStatus = "reserved"
	ItemStatusPurchased ItemStatus = "purchased"
)

var validItemStatuses = []ItemStatus{
	ItemStatusAvailable,
	ItemStatusReserved,
	ItemStatusPurchased,
}

// statusRank orders statuses for sorting: available < reserved < purchased.
var statusRank = map[ItemStatus]int{
	ItemStatusAvailable: 1,
	ItemStatusReserved:  2,
	ItemStatusPurchased: 3,
}

// String implements fmt.Stringer.
func (s ItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ItemStatus.
func (s ItemStatus) IsValid() bool {
	for _, candidate := range validItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// RequiresReserver reports whether the status must carry a reserver name.
func (s ItemStatus) RequiresReserver() bool {
	return s == ItemStatusReserved || s == ItemStatusPurchased
}

// Rank returns the fixed sort rank of the status, 0 for unknown values.
func (s ItemStatus) Rank() int {
	return statusRank[s]
}

// ParseItemStatus converts raw input into an ItemStatus.
func ParseItemStatus(value string) (ItemStatus, error) {
	for _, candidate := range validItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item status %q", value)
}

// ItemStatuses returns the closed set of statuses in rank order.
func ItemStatuses() []ItemStatus {
	out := make([]ItemStatus, len(validItemStatuses))
	copy(out, validItemStatuses)
	return out
}
