package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

// MovementLister is the slice of the ledger the handler needs for the
// movements endpoint.
type MovementLister interface {
	History(ctx context.Context, sweetID string, limit int) ([]*domain.StockMovement, error)
}

// SweetHandler handles HTTP requests for catalog operations.
type SweetHandler struct {
	service ports.SweetService
	ledger  MovementLister
}

func NewSweetHandler(service ports.SweetService, ledger MovementLister) *SweetHandler {
	return &SweetHandler{service: service, ledger: ledger}
}

// List handles GET /sweets.
//
// @Summary      List all sweets
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Sweet
// @Failure      401  {object}  messageResponse
// @Router       /sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	sweets, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sweets)
}

// Search handles GET /sweets/search?name=&category=.
//
// @Summary      Search sweets by name and/or category
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        name      query     string  false  "Case-insensitive substring of the name"
// @Param        category  query     string  false  "Case-insensitive substring of the category"
// @Success      200       {array}   domain.Sweet
// @Failure      401       {object}  messageResponse
// @Router       /sweets/search [get]
func (h *SweetHandler) Search(c echo.Context) error {
	sweets, err := h.service.Search(c.Request().Context(), c.QueryParam("name"), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sweets)
}

// Create handles POST /sweets (admin only).
//
// @Summary      Add a sweet to the catalog
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSweetRequest  true  "Sweet details"
// @Success      201   {object}  domain.Sweet
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /sweets [post]
func (h *SweetHandler) Create(c echo.Context) error {
	var req createSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sweet, err := h.service.Create(c.Request().Context(), ports.CreateSweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sweet)
}

// Update handles PUT /sweets/:id (admin only).
//
// @Summary      Update a sweet's fields
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Sweet id"
// @Param        body  body      updateSweetRequest  true  "Fields to overwrite"
// @Success      200   {object}  domain.Sweet
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	var req updateSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sweet, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.SweetUpdate{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sweet)
}

// Delete handles DELETE /sweets/:id (admin only).
//
// @Summary      Remove a sweet from the catalog
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Sweet id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Sweet removed"})
}

// Purchase handles POST /sweets/:id/purchase.
//
// @Summary      Purchase a quantity of a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Sweet id"
// @Param        body  body      quantityRequest  true  "Quantity to purchase"
// @Success      200   {object}  domain.Sweet
// @Failure      400   {object}  messageResponse  "Insufficient stock or invalid quantity"
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /sweets/{id}/purchase [post]
func (h *SweetHandler) Purchase(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sweet, err := h.service.Purchase(c.Request().Context(), c.Param("id"), req.Quantity, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sweet)
}

// Restock handles POST /sweets/:id/restock (admin only).
//
// @Summary      Restock a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Sweet id"
// @Param        body  body      quantityRequest  true  "Quantity to add"
// @Success      200   {object}  domain.Sweet
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /sweets/{id}/restock [post]
func (h *SweetHandler) Restock(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sweet, err := h.service.Restock(c.Request().Context(), c.Param("id"), req.Quantity, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sweet)
}

// Movements handles GET /sweets/:id/movements (admin only).
//
// @Summary      Stock movement history for a sweet, newest first
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Sweet id"
// @Param        limit  query     int     false  "Max entries (default 50)"
// @Success      200    {array}   movementResponse
// @Failure      401    {object}  messageResponse
// @Router       /sweets/{id}/movements [get]
func (h *SweetHandler) Movements(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	movements, err := h.ledger.History(c.Request().Context(), c.Param("id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMovementResponses(movements))
}
