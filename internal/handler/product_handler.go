package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bbshop/internal/errors"
	"bbshop/internal/service"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest represents a product creation request.
type CreateProductRequest struct {
	Name            string           `json:"name" validate:"required"`
	Category        string           `json:"category" validate:"required,oneof=chicken mutton natukodi other"`
	Price           decimal.Decimal  `json:"price" validate:"required"`
	Description     string           `json:"description"`
	Image           string           `json:"image"`
	IsAvailable     *bool            `json:"isAvailable"`
	IsSpecialOffer  bool             `json:"isSpecialOffer"`
	OfferPrice      *decimal.Decimal `json:"offerPrice"`
	OfferValidUntil *string          `json:"offerValidUntil"`
}

// UpdateProductRequest represents a partial product update. Absent fields
// retain their prior values; explicit false/0/"" are applied.
type UpdateProductRequest struct {
	Name            *string          `json:"name"`
	Category        *string          `json:"category" validate:"omitempty,oneof=chicken mutton natukodi other"`
	Price           *decimal.Decimal `json:"price"`
	Description     *string          `json:"description"`
	Image           *string          `json:"image"`
	IsAvailable     *bool            `json:"isAvailable"`
	IsSpecialOffer  *bool            `json:"isSpecialOffer"`
	OfferPrice      *decimal.Decimal `json:"offerPrice"`
	OfferValidUntil *string          `json:"offerValidUntil"`
}

// SpecialOfferRequest represents a special offer assignment.
type SpecialOfferRequest struct {
	OfferPrice *decimal.Decimal `json:"offerPrice" validate:"required"`
	ValidUntil string           `json:"validUntil" validate:"required"`
}

// AvailabilityResponse reports a toggled availability flag.
type AvailabilityResponse struct {
	ID          uuid.UUID `json:"id"`
	IsAvailable bool      `json:"isAvailable"`
}

// List godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param category query string false "Filter by category"
// @Param special query bool false "Only available products with an unexpired special offer"
// @Success 200 {array} model.Product
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	category := c.QueryParam("category")
	specialOnly := c.QueryParam("special") == "true"

	products, err := h.productService.List(c.Request().Context(), category, specialOnly)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, products)
}

// Get godoc
// @Summary Get a product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, product)
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProductRequest true "Product data"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	validUntil, err := parseOptionalDate(req.OfferValidUntil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid offerValidUntil date")
	}

	product, err := h.productService.Create(c.Request().Context(), service.ProductInput{
		Name:            req.Name,
		Category:        req.Category,
		Price:           req.Price,
		Description:     req.Description,
		Image:           req.Image,
		IsAvailable:     req.IsAvailable,
		IsSpecialOffer:  req.IsSpecialOffer,
		OfferPrice:      req.OfferPrice,
		OfferValidUntil: validUntil,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, product)
}

// Update godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body UpdateProductRequest true "Fields to change"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	validUntil, err := parseOptionalDate(req.OfferValidUntil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid offerValidUntil date")
	}

	product, err := h.productService.Update(c.Request().Context(), id, service.ProductUpdate{
		Name:            req.Name,
		Category:        req.Category,
		Price:           req.Price,
		Description:     req.Description,
		Image:           req.Image,
		IsAvailable:     req.IsAvailable,
		IsSpecialOffer:  req.IsSpecialOffer,
		OfferPrice:      req.OfferPrice,
		OfferValidUntil: validUntil,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, product)
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "product removed"})
}

// ToggleAvailability godoc
// @Summary Toggle product availability
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} AvailabilityResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id}/availability [put]
func (h *ProductHandler) ToggleAvailability(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.productService.ToggleAvailability(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, AvailabilityResponse{
		ID:          product.ID,
		IsAvailable: product.IsAvailable,
	})
}

// SetSpecialOffer godoc
// @Summary Set a special offer on a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body SpecialOfferRequest true "Offer data"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id}/special-offer [put]
func (h *ProductHandler) SetSpecialOffer(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	var req SpecialOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	validUntil, err := parseDate(req.ValidUntil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid validUntil date")
	}

	product, err := h.productService.SetSpecialOffer(c.Request().Context(), id, req.OfferPrice, &validUntil)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, product)
}

// RemoveSpecialOffer godoc
// @Summary Remove a special offer from a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id}/special-offer [delete]
func (h *ProductHandler) RemoveSpecialOffer(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.productService.RemoveSpecialOffer(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, product)
}

func productID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "product not found",
			Code:  "PRODUCT_NOT_FOUND",
		})
	}
	return id, nil
}

// Date layouts accepted for offer expiries.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
