package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/itemserver/internal/model"
	"github.com/vyrodovalexey/itemserver/internal/pathid"
	"github.com/vyrodovalexey/itemserver/internal/router"
	"github.com/vyrodovalexey/itemserver/internal/store"
)

// EventPublisher receives item change events after successful mutations.
type EventPublisher interface {
	Publish(event model.ItemEvent)
}

// ItemHandler handles REST API requests for items.
type ItemHandler struct {
	store    store.Store
	logger   *zap.Logger
	validate *validator.Validate
	events   EventPublisher
}

// NewItemHandler creates a new ItemHandler instance. events may be nil.
func NewItemHandler(s store.Store, logger *zap.Logger, events EventPublisher) *ItemHandler {
	return &ItemHandler{
		store:    s,
		logger:   logger,
		validate: newValidator(),
		events:   events,
	}
}

// Routes returns the item API route table. Exact collection routes precede
// the member prefix routes that share their stem.
func (h *ItemHandler) Routes() []router.Route {
	return []router.Route{
		{Method: http.MethodGet, Pattern: ItemsPath, Match: router.Exact, Handler: http.HandlerFunc(h.ListItems)},
		{Method: http.MethodPost, Pattern: ItemsPath, Match: router.Exact, Handler: http.HandlerFunc(h.CreateItem)},
		{
			Method: http.MethodGet, Pattern: ItemPathPrefix, Match: router.Prefix,
			Name: itemRouteName, Handler: http.HandlerFunc(h.GetItem),
		},
		{
			Method: http.MethodPut, Pattern: ItemPathPrefix, Match: router.Prefix,
			Name: itemRouteName, Handler: http.HandlerFunc(h.UpdateItem),
		},
		{
			Method: http.MethodDelete, Pattern: ItemPathPrefix, Match: router.Prefix,
			Name: itemRouteName, Handler: http.HandlerFunc(h.DeleteItem),
		},
		{Method: http.MethodGet, Pattern: RootPath, Match: router.Exact, Handler: http.HandlerFunc(h.Root)},
	}
}

// RegisterProbeRoutes registers the health and readiness routes.
func (h *ItemHandler) RegisterProbeRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.ReadyCheck).Methods(http.MethodGet)
}

// NotFound writes the uniform 404 body for unrouted requests.
func (h *ItemHandler) NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, h.logger, http.StatusNotFound, msgRouteNotFound)
}

// Root handles GET / requests.
func (h *ItemHandler) Root(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, h.logger, http.StatusOK, model.MessageResponse{Message: msgWelcome})
}

// HealthCheck handles GET /health requests.
func (h *ItemHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, h.logger, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: Version,
	})
}

// ReadyCheck handles GET /ready requests.
func (h *ItemHandler) ReadyCheck(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, h.logger, http.StatusOK, ReadyResponse{
		Status:   "ready",
		Items:    h.store.Len(),
		Capacity: h.store.Capacity(),
	})
}

// ListItems handles GET /api/v1/items requests.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.handleStoreError(w, err, "list items")
		return
	}

	WriteJSON(w, h.logger, http.StatusOK, model.ItemList{Items: items})
}

// GetItem handles GET /api/v1/items/{id} requests.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	item, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, err, "get item")
		return
	}

	WriteJSON(w, h.logger, http.StatusOK, item)
}

// CreateItem handles POST /api/v1/items requests. The body is validated
// before the store is consulted, so a bad body on a full store yields 400.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var input model.CreateItemRequest
	if err := decodeJSONObject(w, r, &input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		WriteError(w, h.logger, http.StatusBadRequest, bodyErrorMessage(err))
		return
	}

	if err := h.validate.Struct(&input); err != nil {
		h.logger.Warn("validation failed", zap.Error(err))
		WriteError(w, h.logger, http.StatusBadRequest, validationMessage(err))
		return
	}

	value, err := input.Value.Int64()
	if err != nil {
		h.logger.Warn("validation failed", zap.Error(err))
		WriteError(w, h.logger, http.StatusBadRequest, msgInvalidValue)
		return
	}

	item, err := h.store.Create(r.Context(), *input.Name, value)
	if err != nil {
		h.handleStoreError(w, err, "create item")
		return
	}

	h.publish(model.NewItemEvent(model.EventTypeCreated, *item))
	WriteJSON(w, h.logger, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/v1/items/{id} requests. Absent fields are
// left unchanged.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var input model.UpdateItemRequest
	if err := decodeJSONObject(w, r, &input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		WriteError(w, h.logger, http.StatusBadRequest, bodyErrorMessage(err))
		return
	}

	patch, err := input.Patch()
	if err != nil {
		h.logger.Warn("validation failed", zap.Error(err))
		WriteError(w, h.logger, http.StatusBadRequest, msgInvalidValue)
		return
	}

	item, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		h.handleStoreError(w, err, "update item")
		return
	}

	h.publish(model.NewItemEvent(model.EventTypeUpdated, *item))
	WriteJSON(w, h.logger, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/v1/items/{id} requests.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.handleStoreError(w, err, "delete item")
		return
	}

	h.publish(model.NewDeletedEvent(id))
	WriteJSON(w, h.logger, http.StatusOK, model.MessageResponse{Message: msgItemDeleted})
}

// itemID extracts the item id from the request path, writing a 400 response
// when it is invalid.
func (h *ItemHandler) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	path := r.URL.EscapedPath()
	id, err := pathid.Extract(path, ItemPathPrefix)
	if err != nil {
		h.logger.Warn("invalid item id", zap.String("path", path), zap.Error(err))
		WriteError(w, h.logger, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}

// handleStoreError handles store errors and writes appropriate HTTP responses.
func (h *ItemHandler) handleStoreError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, h.logger, http.StatusNotFound, msgItemNotFound)
	case errors.Is(err, store.ErrCapacityExceeded):
		h.logger.Warn("item storage full", zap.String("operation", operation))
		WriteError(w, h.logger, http.StatusInsufficientStorage, msgCapacity)
	case errors.Is(err, model.ErrInvalidName):
		WriteError(w, h.logger, http.StatusBadRequest, msgInvalidItemName)
	default:
		h.logger.Error("store operation failed", zap.String("operation", operation), zap.Error(err))
		WriteError(w, h.logger, http.StatusInternalServerError, msgInternal)
	}
}

func (h *ItemHandler) publish(event model.ItemEvent) {
	if h.events != nil {
		h.events.Publish(event)
	}
}
