package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bbshop/internal/errors"
	"bbshop/internal/service"
)

// PriceHandler handles price board endpoints.
type PriceHandler struct {
	priceService service.PriceService
}

// NewPriceHandler creates a new price handler.
func NewPriceHandler(priceService service.PriceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// CategoryPriceRequest is the write-side pair for one headline category.
type CategoryPriceRequest struct {
	Current  decimal.Decimal  `json:"current"`
	Previous *decimal.Decimal `json:"previous"`
}

// UpdatePricesRequest merges per-category prices; absent categories keep
// their values.
type UpdatePricesRequest struct {
	Chicken  *CategoryPriceRequest `json:"chicken"`
	Mutton   *CategoryPriceRequest `json:"mutton"`
	Natukodi *CategoryPriceRequest `json:"natukodi"`
}

// AddPriceItemRequest adds an ad-hoc named entry to the board.
type AddPriceItemRequest struct {
	Name  string          `json:"name" validate:"required"`
	Emoji string          `json:"emoji" validate:"required"`
	Price decimal.Decimal `json:"price" validate:"required"`
	Unit  string          `json:"unit"`
}

// Get godoc
// @Summary Get the headline price board
// @Tags prices
// @Produce json
// @Success 200 {object} service.PriceSnapshot
// @Router /prices [get]
func (h *PriceHandler) Get(c echo.Context) error {
	snapshot, err := h.priceService.Get(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, snapshot)
}

// Update godoc
// @Summary Update headline prices
// @Tags prices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdatePricesRequest true "Per-category prices"
// @Success 200 {object} service.PriceSnapshot
// @Failure 400 {object} errors.ErrorResponse
// @Router /prices [put]
func (h *PriceHandler) Update(c echo.Context) error {
	var req UpdatePricesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	snapshot, err := h.priceService.Update(c.Request().Context(), service.PriceUpdate{
		Chicken:  categoryUpdate(req.Chicken),
		Mutton:   categoryUpdate(req.Mutton),
		Natukodi: categoryUpdate(req.Natukodi),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, snapshot)
}

// AddItem godoc
// @Summary Add an ad-hoc product to the price board
// @Tags prices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddPriceItemRequest true "Item data"
// @Success 200 {object} service.PriceSnapshot
// @Failure 400 {object} errors.ErrorResponse
// @Router /prices [post]
func (h *PriceHandler) AddItem(c echo.Context) error {
	var req AddPriceItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	snapshot, err := h.priceService.AddItem(c.Request().Context(), service.PriceItemInput{
		Name:  req.Name,
		Emoji: req.Emoji,
		Price: req.Price,
		Unit:  req.Unit,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, snapshot)
}

func categoryUpdate(req *CategoryPriceRequest) *service.CategoryPriceUpdate {
	if req == nil {
		return nil
	}
	return &service.CategoryPriceUpdate{
		Current:  req.Current,
		Previous: req.Previous,
	}
}
