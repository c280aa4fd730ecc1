package wishlist

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	pkgerrors "github.com/wishboard/wishboard-backend/pkg/errors"
	"github.com/wishboard/wishboard-backend/pkg/firebase"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestRepo(t *testing.T, rt roundTripFunc) *Repository {
	t.Helper()
	client, err := firebase.NewClient("http://store.test", firebase.WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return NewRepository(client, "wishlist")
}

func TestRepositoryListAllNormalizesStoreKeys(t *testing.T) {
	// The second record has no id of its own; the store key must become it.
	body := `{
		"1700000000002": {"id":"1700000000002","name":"Mug","price":"7.50","status":"reserved","reservedBy":"Ana"},
		"1700000000001": {"name":"Lamp","price":25,"status":"available","reservedBy":""}
	}`

	repo := newTestRepo(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/wishlist.json" {
			t.Fatalf("unexpected path %q", req.URL.Path)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     http.Header{},
		}, nil
	})

	items, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// Keys come back in sorted order.
	if items[0].ID.String() != "1700000000001" || items[1].ID.String() != "1700000000002" {
		t.Fatalf("unexpected order: %v, %v", items[0].ID, items[1].ID)
	}
	// Legacy numeric price decodes as its textual form.
	if items[0].Price.String() != "25" {
		t.Fatalf("unexpected price %q", items[0].Price)
	}
}

func TestRepositoryListAllToleratesEmptyCollection(t *testing.T) {
	repo := newTestRepo(t, func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("null")),
			Header:     http.Header{},
		}, nil
	})

	items, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("empty collection must not fail: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestRepositoryListAllReportsMalformedDocuments(t *testing.T) {
	repo := newTestRepo(t, func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"bad":"not-an-object"}`)),
			Header:     http.Header{},
		}, nil
	})

	_, err := repo.ListAll(context.Background())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStore {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestRepositoryUpsertWritesUnderItemID(t *testing.T) {
	var capturedPath, capturedMethod string
	repo := newTestRepo(t, func(req *http.Request) (*http.Response, error) {
		capturedPath = req.URL.Path
		capturedMethod = req.Method
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("{}")),
			Header:     http.Header{},
		}, nil
	})

	item := availableItem()
	if err := repo.Upsert(context.Background(), item); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if capturedMethod != http.MethodPut || capturedPath != "/wishlist/1700000000001.json" {
		t.Fatalf("unexpected request %s %s", capturedMethod, capturedPath)
	}

	if err := repo.Upsert(context.Background(), Item{}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestRepositoryRemoveDeletesByID(t *testing.T) {
	var capturedPath, capturedMethod string
	repo := newTestRepo(t, func(req *http.Request) (*http.Response, error) {
		capturedPath = req.URL.Path
		capturedMethod = req.Method
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("null")),
			Header:     http.Header{},
		}, nil
	})

	if err := repo.Remove(context.Background(), "1700000000001"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if capturedMethod != http.MethodDelete || capturedPath != "/wishlist/1700000000001.json" {
		t.Fatalf("unexpected request %s %s", capturedMethod, capturedPath)
	}
}
