package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	pkgerrors "github.com/wishboard/wishboard-backend/pkg/errors"
	"github.com/wishboard/wishboard-backend/pkg/firebase"
)

// Repository adapts the flat-document store to the item collection. The store
// keys documents by id; when a record carries no id of its own the store key
// becomes the id, so ids stay stable across reads regardless of which side
// assigned them.
type Repository struct {
	client     *firebase.Client
	collection string
}

// NewRepository binds a repository to a store client and collection name.
func NewRepository(client *firebase.Client, collection string) *Repository {
	return &Repository{client: client, collection: collection}
}

// ListAll fetches the full collection. An absent collection yields an empty
// slice. Document order follows the store key order, which for ids minted by
// this service is creation order.
func (r *Repository) ListAll(ctx context.Context) ([]Item, error) {
	docs, err := r.client.GetCollection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(docs))
	for key := range docs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	items := make([]Item, 0, len(keys))
	for _, key := range keys {
		var item Item
		if err := json.Unmarshal(docs[key], &item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, fmt.Sprintf("decode item %q", key))
		}
		if item.ID == "" {
			item.ID = FlexibleString(key)
		}
		items = append(items, item)
	}
	return items, nil
}

// Upsert writes one item under its id.
func (r *Repository) Upsert(ctx context.Context, item Item) error {
	if item.ID == "" {
		return pkgerrors.New(pkgerrors.CodeStore, "item id is required for upsert")
	}
	return r.client.PutDocument(ctx, r.collection, item.ID.String(), item)
}

// Remove deletes one item by id.
func (r *Repository) Remove(ctx context.Context, id string) error {
	return r.client.DeleteDocument(ctx, r.collection, id)
}

// Ping verifies the store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, r.collection)
}
