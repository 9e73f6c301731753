package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/fundwatch/api/http/presenter"
	"github.com/artem13815/fundwatch/pkg/watchlist"
)

type SavedFundsHandler struct {
	uc watchlist.UseCase
}

func NewSavedFundsHandler(uc watchlist.UseCase) *SavedFundsHandler {
	return &SavedFundsHandler{uc: uc}
}

func currentUserID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals("userId").(int64)
	return id, ok
}

type saveFundRequest struct {
	FundID       string  `json:"fundId"`
	FundName     string  `json:"fundName"`
	FundCategory *string `json:"fundCategory"`
	NAV          *string `json:"nav"`
}

// List returns the caller's watchlist.
// @Summary List saved funds
// @Tags    saved-funds
// @Produce json
// @Security BearerAuth
// @Success 200 {array} watchlist.SavedFund
// @Router  /saved-funds [get]
func (h *SavedFundsHandler) List(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Access token required")
	}
	funds, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
	}
	return presenter.JSON(c, http.StatusOK, funds)
}

// Save adds a fund to the caller's watchlist.
// @Summary Save a fund
// @Tags    saved-funds
// @Accept  json
// @Produce json
// @Param   input body saveFundRequest true "fund payload"
// @Security BearerAuth
// @Success 200 {object} watchlist.SavedFund
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /saved-funds [post]
func (h *SavedFundsHandler) Save(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Access token required")
	}
	var req saveFundRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	fund, err := h.uc.Save(c.Context(), watchlist.SavedFund{
		UserID:       userID,
		FundID:       req.FundID,
		FundName:     req.FundName,
		FundCategory: req.FundCategory,
		NAV:          req.NAV,
	})
	if err != nil {
		var verr watchlist.ErrValidation
		switch {
		case errors.As(err, &verr):
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		case errors.Is(err, watchlist.ErrAlreadySaved):
			return presenter.Error(c, http.StatusBadRequest, "Fund is already saved")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
		}
	}
	return presenter.JSON(c, http.StatusOK, fund)
}

// Remove deletes one watchlist entry by fund id.
// @Summary Remove a saved fund
// @Tags    saved-funds
// @Produce json
// @Param   fundId path string true "external fund id"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /saved-funds/{fundId} [delete]
func (h *SavedFundsHandler) Remove(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Access token required")
	}
	fundID := c.Params("fundId")
	if err := h.uc.Remove(c.Context(), userID, fundID); err != nil {
		if errors.Is(err, watchlist.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "Saved fund not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "Fund removed from saved list"})
}

// Check reports whether a fund is on the caller's watchlist.
// @Summary Check if fund is saved
// @Tags    saved-funds
// @Produce json
// @Param   fundId path string true "external fund id"
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Router  /saved-funds/{fundId}/check [get]
func (h *SavedFundsHandler) Check(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Access token required")
	}
	saved, err := h.uc.IsSaved(c.Context(), userID, c.Params("fundId"))
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"isSaved": saved})
}
