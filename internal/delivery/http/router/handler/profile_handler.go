package handler

import (
	"log/slog"
	"net/http"

	"coderr/internal/delivery/http/middleware"
	"coderr/internal/delivery/http/response"
	"coderr/internal/domain/entity"
	"coderr/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for profile handlers.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{uc: uc, logger: logger}
}

// profilePayload is the outward shape of a user with its profile. The password
// hash never leaves the service.
type profilePayload struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Type         string `json:"type"`
	Location     string `json:"location"`
	Tel          string `json:"tel"`
	Description  string `json:"description"`
	WorkingHours string `json:"working_hours"`
	Avatar       string `json:"avatar"`
}

func toProfilePayload(user *entity.User) *profilePayload {
	payload := &profilePayload{
		UserID:   user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	}
	if user.Profile != nil {
		payload.Type = user.Profile.Type.String()
		payload.Location = user.Profile.Location
		payload.Tel = user.Profile.Tel
		payload.Description = user.Profile.Description
		payload.WorkingHours = user.Profile.WorkingHours
		payload.Avatar = user.Profile.Avatar
	}

	return payload
}

// GetProfile handles a profile lookup by user id.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	user, err := h.uc.GetProfile(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfilePayload(user), "")
}

// UpdateProfile handles a self-service profile update.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile update input")
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), middleware.ActorFromContext(c), id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfilePayload(user), "Profile updated successfully")
}

// ListBusinessProfiles handles the business directory listing.
func (h *ProfileHandler) ListBusinessProfiles(c echo.Context) error {
	profiles, err := h.uc.ListBusinessProfiles(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profiles, "")
}

// ListCustomerProfiles handles the customer directory listing.
func (h *ProfileHandler) ListCustomerProfiles(c echo.Context) error {
	profiles, err := h.uc.ListCustomerProfiles(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profiles, "")
}
