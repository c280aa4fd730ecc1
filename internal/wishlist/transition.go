package wishlist

import (
	"strings"
	"time"

	"github.com/wishboard/wishboard-backend/pkg/enums"
	pkgerrors "github.com/wishboard/wishboard-backend/pkg/errors"
)

// Transition moves an item to the target status, enforcing the transition
// rules:
//
//	available → reserved/purchased   requires a reserver name
//	reserved  → purchased            requires a reserver name (may differ)
//	reserved/purchased → available   clears the reserver
//	any → same status                idempotent
//
// Reserving an already reserved item under a different name is allowed; the
// board has no ownership concept beyond the recorded name. Every successful
// transition refreshes UpdatedAt.
func Transition(item *Item, target enums.ItemStatus, reservedBy string, now time.Time) error {
	if !target.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	name := strings.TrimSpace(reservedBy)
	if target.RequiresReserver() && name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "reservedBy is required")
	}

	item.Status = target
	if target == enums.ItemStatusAvailable {
		item.ReservedBy = ""
	} else {
		item.ReservedBy = name
	}
	item.UpdatedAt = now
	return nil
}
