package handler

import (
	"log/slog"
	"net/http"

	"coderr/internal/delivery/http/middleware"
	"coderr/internal/delivery/http/response"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReviewHandler holds dependencies for review handlers.
type ReviewHandler struct {
	uc     usecase.ReviewUsecase
	logger *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{uc: uc, logger: logger}
}

// CreateReview handles review creation. Whatever reviewer the payload claims,
// the stored reviewer is the acting customer.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var input usecase.CreateReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	review, err := h.uc.CreateReview(c.Request().Context(), middleware.ActorFromContext(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, review, "Review created successfully")
}

// ListReviews handles the review listing with optional filters. Unparseable
// filter values are ignored.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	filter := &usecase.ReviewListFilter{}

	if raw := c.QueryParam("business_user_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.BusinessUserID = &id
		}
	}
	if raw := c.QueryParam("reviewer_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.ReviewerID = &id
		}
	}

	reviews, err := h.uc.ListReviews(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reviews, "")
}

// ListForBusiness handles the reviews-received listing for one business user.
func (h *ReviewHandler) ListForBusiness(c echo.Context) error {
	businessID, err := parseBusinessUserParam(c)
	if err != nil {
		return err
	}

	reviews, err := h.uc.ListForBusiness(c.Request().Context(), businessID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reviews, "")
}

// ListForReviewer handles the reviews-written listing for one customer.
func (h *ReviewHandler) ListForReviewer(c echo.Context) error {
	reviewerID, err := uuid.Parse(c.Param("reviewer_id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("reviewer_id must be a UUID")
	}

	reviews, err := h.uc.ListForReviewer(c.Request().Context(), reviewerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reviews, "")
}

// GetReview handles a single review lookup.
func (h *ReviewHandler) GetReview(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	review, err := h.uc.GetReview(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, review, "")
}

// UpdateReview handles a partial review update by its reviewer.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review update input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	review, err := h.uc.UpdateReview(c.Request().Context(), middleware.ActorFromContext(c), id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, review, "Review updated successfully")
}

// DeleteReview handles review removal by its reviewer.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteReview(c.Request().Context(), middleware.ActorFromContext(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Review deleted successfully")
}
