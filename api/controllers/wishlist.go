package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wishboard/wishboard-backend/api/responses"
	"github.com/wishboard/wishboard-backend/api/validators"
	"github.com/wishboard/wishboard-backend/internal/wishlist"
	pkgerrors "github.com/wishboard/wishboard-backend/pkg/errors"
	"github.com/wishboard/wishboard-backend/pkg/logger"
)

type createItemPayload struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image"`
	Link  string `json:"link" validate:"required"`
	Price string `json:"price" validate:"required"`
}

type statusPayload struct {
	Status     string `json:"status"`
	ReservedBy string `json:"reservedBy"`
}

type adminEditPayload struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Link  string `json:"link"`
}

type itemResponse struct {
	Message string        `json:"message"`
	Item    wishlist.Item `json:"item"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// WishlistList returns the board, filtered and sorted per the query string.
// The body is a bare array so existing clients keep working.
func WishlistList(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		params := r.URL.Query()
		query := wishlist.Query{
			Status:     strings.TrimSpace(params.Get("status")),
			ReservedBy: strings.TrimSpace(params.Get("reservedBy")),
			SortBy:     strings.TrimSpace(params.Get("sortBy")),
			Order:      strings.TrimSpace(params.Get("order")),
		}

		items, err := svc.List(ctx, query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, items)
	}
}

// WishlistCreate adds a new item to the board.
func WishlistCreate(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		var payload createItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.Create(ctx, wishlist.CreateInput{
			Name:  payload.Name,
			Image: payload.Image,
			Link:  payload.Link,
			Price: payload.Price,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithItemID(ctx, item.ID.String()), "wishlist.item.created")
		}
		responses.WriteJSON(w, http.StatusOK, itemResponse{Message: "item added", Item: item})
	}
}

// WishlistUpdateStatus drives the full status state machine for one item.
func WishlistUpdateStatus(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		id := chi.URLParam(r, "id")

		var payload statusPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}

		item, err := svc.UpdateStatus(ctx, id, payload.Status, payload.ReservedBy)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithItemID(ctx, id), "wishlist.status.updated")
		}
		responses.WriteJSON(w, http.StatusOK, itemResponse{Message: "status updated", Item: item})
	}
}

// WishlistReserve is the visitor surface: it only accepts claiming targets.
func WishlistReserve(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		id := chi.URLParam(r, "id")

		var payload statusPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}

		item, err := svc.Reserve(ctx, id, payload.Status, payload.ReservedBy)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithItemID(ctx, id), "wishlist.item.reserved")
		}
		responses.WriteJSON(w, http.StatusOK, itemResponse{Message: "status updated", Item: item})
	}
}

// WishlistAdminEdit rewrites display fields, leaving reservation state alone.
func WishlistAdminEdit(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		id := chi.URLParam(r, "id")

		var payload adminEditPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}

		item, err := svc.AdminEdit(ctx, id, wishlist.AdminEditInput{
			Name:  payload.Name,
			Image: payload.Image,
			Link:  payload.Link,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithItemID(ctx, id), "wishlist.item.edited")
		}
		responses.WriteJSON(w, http.StatusOK, itemResponse{Message: "item updated", Item: item})
	}
}

// WishlistDelete removes an item from the board.
func WishlistDelete(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		id := chi.URLParam(r, "id")

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithItemID(ctx, id), "wishlist.item.removed")
		}
		responses.WriteJSON(w, http.StatusOK, messageResponse{Message: "item removed"})
	}
}

// WishlistProgress reports the per-status totals view of the board.
func WishlistProgress(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		mode, err := wishlist.ParseProgressMode(strings.TrimSpace(r.URL.Query().Get("mode")))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		summary, err := svc.Progress(ctx, mode)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, summary)
	}
}
