package wishlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wishboard/wishboard-backend/pkg/enums"
	pkgerrors "github.com/wishboard/wishboard-backend/pkg/errors"
)

type fakeStore struct {
	items     []Item
	listErr   error
	upsertErr error
	removeErr error

	upserted []Item
	removed  []string
}

func (f *fakeStore) ListAll(ctx context.Context) ([]Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]Item, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeStore) Upsert(ctx context.Context, item Item) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, item)
	return nil
}

func (f *fakeStore) Remove(ctx context.Context, id string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, id)
	return nil
}

func newTestService(t *testing.T, store Store, now time.Time) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Store: store, Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error with code %s, got %v", code, err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s", code, typed.Code())
	}
}

func TestNewServiceRequiresStore(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error without store")
	}
}

func TestServiceCreate(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	store := &fakeStore{}
	svc := newTestService(t, store, now)

	item, err := svc.Create(context.Background(), CreateInput{Name: "Lamp", Link: "https://x", Price: "25"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.ID.String() != "1772361000000" {
		t.Fatalf("expected epoch-millisecond id, got %q", item.ID)
	}
	if item.Status != enums.ItemStatusAvailable || item.ReservedBy != "" {
		t.Fatalf("new items must start available: %+v", item)
	}
	if item.Image != PlaceholderImage {
		t.Fatalf("blank image must use the placeholder, got %q", item.Image)
	}
	if !item.CreatedAt.Equal(now) || !item.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps: %+v", item)
	}
	if len(store.upserted) != 1 {
		t.Fatalf("expected one upsert, got %d", len(store.upserted))
	}
}

func TestServiceCreateValidatesRequiredFields(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store, time.Now())

	for _, input := range []CreateInput{
		{Link: "https://x", Price: "25"},
		{Name: "Lamp", Price: "25"},
		{Name: "Lamp", Link: "https://x"},
	} {
		_, err := svc.Create(context.Background(), input)
		expectCode(t, err, pkgerrors.CodeValidation)
	}
	if len(store.upserted) != 0 {
		t.Fatalf("invalid input must not reach the store")
	}
}

func TestServiceCreateKeepsProvidedImage(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store, time.Now())

	item, err := svc.Create(context.Background(), CreateInput{
		Name: "Lamp", Image: "https://img/lamp.png", Link: "https://x", Price: "25",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Image != "https://img/lamp.png" {
		t.Fatalf("unexpected image %q", item.Image)
	}
}

func TestServiceUpdateStatusFullMachine(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	store := &fakeStore{items: []Item{availableItem()}}
	svc := newTestService(t, store, now)

	item, err := svc.UpdateStatus(context.Background(), "1700000000001", "reserved", "Ana")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if item.Status != enums.ItemStatusReserved || item.ReservedBy != "Ana" {
		t.Fatalf("unexpected item %+v", item)
	}
	if len(store.upserted) != 1 {
		t.Fatalf("expected persisted write")
	}

	// Release back to available clears the name.
	store.items = []Item{item}
	released, err := svc.UpdateStatus(context.Background(), "1700000000001", "available", "")
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if released.ReservedBy != "" {
		t.Fatalf("release must clear reservedBy, got %q", released.ReservedBy)
	}
}

func TestServiceUpdateStatusErrors(t *testing.T) {
	store := &fakeStore{items: []Item{availableItem()}}
	svc := newTestService(t, store, time.Now())

	_, err := svc.UpdateStatus(context.Background(), "missing", "reserved", "Ana")
	expectCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.UpdateStatus(context.Background(), "1700000000001", "disponivel_invalid", "Ana")
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.UpdateStatus(context.Background(), "1700000000001", "reserved", "")
	expectCode(t, err, pkgerrors.CodeValidation)

	if len(store.upserted) != 0 {
		t.Fatalf("failed transitions must not write")
	}
}

func TestServiceReserveRejectsRelease(t *testing.T) {
	reserved := availableItem()
	reserved.Status = enums.ItemStatusReserved
	reserved.ReservedBy = "Ana"
	store := &fakeStore{items: []Item{reserved}}
	svc := newTestService(t, store, time.Now())

	_, err := svc.Reserve(context.Background(), "1700000000001", "available", "")
	expectCode(t, err, pkgerrors.CodeValidation)

	item, err := svc.Reserve(context.Background(), "1700000000001", "purchased", "Rui")
	if err != nil {
		t.Fatalf("purchase through visitor surface: %v", err)
	}
	if item.Status != enums.ItemStatusPurchased || item.ReservedBy != "Rui" {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestServiceAdminEdit(t *testing.T) {
	now := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)
	reserved := availableItem()
	reserved.Status = enums.ItemStatusReserved
	reserved.ReservedBy = "Ana"
	store := &fakeStore{items: []Item{reserved}}
	svc := newTestService(t, store, now)

	item, err := svc.AdminEdit(context.Background(), "1700000000001", AdminEditInput{Name: "Floor Lamp", Link: "https://y"})
	if err != nil {
		t.Fatalf("admin edit: %v", err)
	}
	if item.Name != "Floor Lamp" || item.Link != "https://y" {
		t.Fatalf("unexpected edit result %+v", item)
	}
	if item.Image != reserved.Image {
		t.Fatalf("untouched fields must survive, got %q", item.Image)
	}
	if item.Status != enums.ItemStatusReserved || item.ReservedBy != "Ana" {
		t.Fatalf("admin edit must not touch reservation state: %+v", item)
	}
	if !item.UpdatedAt.Equal(now) {
		t.Fatalf("expected UpdatedAt refresh, got %v", item.UpdatedAt)
	}

	_, err = svc.AdminEdit(context.Background(), "missing", AdminEditInput{Name: "X"})
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceDeletePassesStoreVerdictThrough(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store, time.Now())

	if err := svc.Delete(context.Background(), "123"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.removed) != 1 || store.removed[0] != "123" {
		t.Fatalf("unexpected removals %v", store.removed)
	}

	store.removeErr = pkgerrors.Wrap(pkgerrors.CodeStore, errors.New("boom"), "delete document")
	err := svc.Delete(context.Background(), "123")
	expectCode(t, err, pkgerrors.CodeStore)
}

func TestServiceListAndProgressPropagateStoreErrors(t *testing.T) {
	store := &fakeStore{listErr: pkgerrors.Wrap(pkgerrors.CodeStore, errors.New("down"), "read collection")}
	svc := newTestService(t, store, time.Now())

	_, err := svc.List(context.Background(), Query{})
	expectCode(t, err, pkgerrors.CodeStore)

	_, err = svc.Progress(context.Background(), ProgressModeMoney)
	expectCode(t, err, pkgerrors.CodeStore)
}
