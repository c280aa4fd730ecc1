package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/wishboard/wishboard-backend/pkg/errors"
)

const (
	defaultTimeout             = 10 * time.Second
	errorBodyReadLimit   int64 = 1024
	shallowQueryParam          = "shallow=true"
)

var errBaseURLRequired = errors.New("store base URL is required")

// Client speaks the Firebase Realtime Database REST dialect: a collection is a
// JSON object at <base>/<collection>.json whose keys address individual
// documents at <base>/<collection>/<key>.json. Any store exposing the same
// surface can be substituted.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient builds a document store client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// GetCollection fetches every document in the collection keyed by its store
// key. A null or empty body yields an empty map, never an error.
func (c *Client) GetCollection(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStore, "store client not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.collectionURL(collection), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "build read request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "execute read request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, "read collection")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "read response body")
	}

	trimmedBody := bytes.TrimSpace(body)
	if len(trimmedBody) == 0 || bytes.Equal(trimmedBody, []byte("null")) {
		return map[string]json.RawMessage{}, nil
	}

	var docs map[string]json.RawMessage
	if err := json.Unmarshal(trimmedBody, &docs); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "decode collection")
	}
	return docs, nil
}

// PutDocument upserts a single document under the given key.
func (c *Client) PutDocument(ctx context.Context, collection, key string, doc any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeStore, "store client not configured")
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStore, err, "marshal document")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.documentURL(collection, key), bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStore, err, "build write request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStore, err, "execute write request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp, "write document")
	}
	return nil
}

// DeleteDocument removes a single document; deleting an absent key succeeds.
func (c *Client) DeleteDocument(ctx context.Context, collection, key string) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeStore, "store client not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.documentURL(collection, key), nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStore, err, "build delete request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStore, err, "execute delete request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.statusError(resp, "delete document")
	}
	return nil
}

// Ping issues a shallow read against the collection root for readiness checks.
func (c *Client) Ping(ctx context.Context, collection string) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeStore, "store client not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.collectionURL(collection)+"?"+shallowQueryParam, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStore, err, "build ping request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStore, err, "execute ping request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp, "ping store")
	}
	return nil
}

func (c *Client) collectionURL(collection string) string {
	return fmt.Sprintf("%s/%s.json", c.baseURL, url.PathEscape(collection))
}

func (c *Client) documentURL(collection, key string) string {
	return fmt.Sprintf("%s/%s/%s.json", c.baseURL, url.PathEscape(collection), url.PathEscape(key))
}

func (c *Client) statusError(resp *http.Response, action string) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	return pkgerrors.Wrap(
		pkgerrors.CodeStore,
		fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
		action+" failed",
	)
}
