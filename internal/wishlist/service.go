package wishlist

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/wishboard/wishboard-backend/pkg/enums"
	pkgerrors "github.com/wishboard/wishboard-backend/pkg/errors"
)

// PlaceholderImage replaces a blank image URL at creation time.
const PlaceholderImage = "https://upload.wikimedia.org/wikipedia/commons/6/65/No-Image-Placeholder.svg"

// Store is the persistence surface the service depends on. The external
// document store is the sole arbiter of consistency: concurrent writes to the
// same item resolve last-write-wins, which the board accepts.
type Store interface {
	ListAll(ctx context.Context) ([]Item, error)
	Upsert(ctx context.Context, item Item) error
	Remove(ctx context.Context, id string) error
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Store Store
	// Now overrides the clock; defaults to time.Now. Tests pin it.
	Now func() time.Time
}

// Service exposes the board's operations: the visitor-facing reservation flow
// and the admin-only item lifecycle.
type Service interface {
	List(ctx context.Context, query Query) ([]Item, error)
	Create(ctx context.Context, input CreateInput) (Item, error)
	UpdateStatus(ctx context.Context, id, status, reservedBy string) (Item, error)
	Reserve(ctx context.Context, id, status, reservedBy string) (Item, error)
	AdminEdit(ctx context.Context, id string, input AdminEditInput) (Item, error)
	Delete(ctx context.Context, id string) error
	Progress(ctx context.Context, mode ProgressMode) (ProgressSummary, error)
}

type service struct {
	store Store
	now   func() time.Time
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{store: params.Store, now: now}, nil
}

// List returns the collection filtered and sorted per the query.
func (s *service) List(ctx context.Context, query Query) ([]Item, error) {
	items, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Apply(items), nil
}

// Create mints a new available item. The id is the creation instant in epoch
// milliseconds, matching ids assigned by earlier revisions of the board.
func (s *service) Create(ctx context.Context, input CreateInput) (Item, error) {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Link) == "" ||
		strings.TrimSpace(input.Price) == "" {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "name, link and price are required")
	}

	image := strings.TrimSpace(input.Image)
	if image == "" {
		image = PlaceholderImage
	}

	now := s.now().UTC()
	item := Item{
		ID:         FlexibleString(strconv.FormatInt(now.UnixMilli(), 10)),
		Name:       input.Name,
		Image:      image,
		Link:       input.Link,
		Price:      FlexibleString(input.Price),
		Status:     enums.ItemStatusAvailable,
		ReservedBy: "",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.Upsert(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// UpdateStatus applies the full state machine to one item.
func (s *service) UpdateStatus(ctx context.Context, id, status, reservedBy string) (Item, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return Item{}, err
	}

	target, err := enums.ParseItemStatus(status)
	if err != nil {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	if err := Transition(&item, target, reservedBy, s.now().UTC()); err != nil {
		return Item{}, err
	}

	if err := s.store.Upsert(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Reserve is the visitor-facing surface: it only accepts targets that claim
// the item, never the release back to available.
func (s *service) Reserve(ctx context.Context, id, status, reservedBy string) (Item, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return Item{}, err
	}

	target, err := enums.ParseItemStatus(status)
	if err != nil || !target.RequiresReserver() {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	if err := Transition(&item, target, reservedBy, s.now().UTC()); err != nil {
		return Item{}, err
	}

	if err := s.store.Upsert(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// AdminEdit rewrites display fields without touching the reservation state.
// Empty input fields leave the current values in place.
func (s *service) AdminEdit(ctx context.Context, id string, input AdminEditInput) (Item, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return Item{}, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		item.Name = name
	}
	if image := strings.TrimSpace(input.Image); image != "" {
		item.Image = image
	}
	if link := strings.TrimSpace(input.Link); link != "" {
		item.Link = link
	}
	item.UpdatedAt = s.now().UTC()

	if err := s.store.Upsert(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Delete removes the item. No existence check is made; the store decides
// whether the delete succeeds.
func (s *service) Delete(ctx context.Context, id string) error {
	return s.store.Remove(ctx, id)
}

// Progress recomputes the derived totals view over the live collection.
func (s *service) Progress(ctx context.Context, mode ProgressMode) (ProgressSummary, error) {
	items, err := s.store.ListAll(ctx)
	if err != nil {
		return ProgressSummary{}, err
	}
	return Summarize(items, mode), nil
}

func (s *service) findItem(ctx context.Context, id string) (Item, error) {
	items, err := s.store.ListAll(ctx)
	if err != nil {
		return Item{}, err
	}
	for _, item := range items {
		if item.ID.String() == id {
			return item, nil
		}
	}
	return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
}
