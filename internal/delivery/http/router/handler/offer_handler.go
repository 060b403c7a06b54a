package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"coderr/internal/delivery/http/middleware"
	"coderr/internal/delivery/http/response"
	"coderr/internal/domain/entity"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OfferHandler holds dependencies for catalog handlers.
type OfferHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewOfferHandler is the constructor for OfferHandler, injected by Fx.
func NewOfferHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *OfferHandler {
	return &OfferHandler{uc: uc, logger: logger}
}

// CreateOffer handles offer publication.
func (h *OfferHandler) CreateOffer(c echo.Context) error {
	var input usecase.CreateOfferInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid offer input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	offer, err := h.uc.CreateOffer(c.Request().Context(), middleware.ActorFromContext(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, offer, "Offer created successfully")
}

// offerListItem is the compact listing projection. Details shrink to their id
// and tier label; the price and delivery minimums are derived across tiers.
type offerListItem struct {
	ID              uuid.UUID       `json:"id"`
	CreatorID       uuid.UUID       `json:"creator_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Details         []detailListRef `json:"details"`
	MinPrice        float64         `json:"min_price"`
	MinDeliveryTime int             `json:"min_delivery_time"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type detailListRef struct {
	ID        uuid.UUID `json:"id"`
	OfferType string    `json:"offer_type"`
}

func toOfferListItem(offer *entity.Offer) offerListItem {
	refs := make([]detailListRef, 0, len(offer.Details))
	for _, d := range offer.Details {
		refs = append(refs, detailListRef{ID: d.ID, OfferType: d.OfferType})
	}

	return offerListItem{
		ID:              offer.ID,
		CreatorID:       offer.CreatorID,
		Title:           offer.Title,
		Description:     offer.Description,
		Details:         refs,
		MinPrice:        offer.MinPrice(),
		MinDeliveryTime: offer.MinDeliveryTime(),
		CreatedAt:       offer.CreatedAt,
		UpdatedAt:       offer.UpdatedAt,
	}
}

// ListOffers handles the offer listing with optional filters. A creator filter
// that is not a UUID and a delivery-time filter that is not a number are both
// ignored rather than rejected.
func (h *OfferHandler) ListOffers(c echo.Context) error {
	filter := &usecase.OfferListFilter{}

	if raw := c.QueryParam("creator_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.CreatorID = &id
		}
	}
	if raw := c.QueryParam("max_delivery_time"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil {
			filter.MaxDeliveryTime = &days
		}
	}

	offers, err := h.uc.ListOffers(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	items := make([]offerListItem, 0, len(offers))
	for _, offer := range offers {
		items = append(items, toOfferListItem(offer))
	}

	return response.Success(c, http.StatusOK, items, "")
}

// GetOffer handles a single offer lookup.
func (h *OfferHandler) GetOffer(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	offer, err := h.uc.GetOffer(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, offer, "")
}

// UpdateOffer handles a partial offer update.
func (h *OfferHandler) UpdateOffer(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateOfferInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid offer update input")
	}

	offer, err := h.uc.UpdateOffer(c.Request().Context(), middleware.ActorFromContext(c), id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, offer, "Offer updated successfully")
}

// DeleteOffer handles offer removal.
func (h *OfferHandler) DeleteOffer(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteOffer(c.Request().Context(), middleware.ActorFromContext(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Offer deleted successfully")
}

// ListOfferDetails handles the flat detail listing.
func (h *OfferHandler) ListOfferDetails(c echo.Context) error {
	details, err := h.uc.ListOfferDetails(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, details, "")
}

// GetOfferDetail handles a single detail lookup.
func (h *OfferHandler) GetOfferDetail(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	detail, err := h.uc.GetOfferDetail(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, detail, "")
}

// UpdateOfferDetail handles a partial detail update.
func (h *OfferHandler) UpdateOfferDetail(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var input usecase.OfferDetailPatch
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid detail update input")
	}

	detail, err := h.uc.UpdateOfferDetail(c.Request().Context(), middleware.ActorFromContext(c), id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, detail, "Offer detail updated successfully")
}

// DeleteOfferDetail handles detail removal.
func (h *OfferHandler) DeleteOfferDetail(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteOfferDetail(c.Request().Context(), middleware.ActorFromContext(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Offer detail deleted successfully")
}
