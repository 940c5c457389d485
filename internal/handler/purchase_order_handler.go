package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"smartshelf/internal/config"
	"smartshelf/internal/domain/model"
	"smartshelf/internal/middleware"
	"smartshelf/internal/repository"
	"smartshelf/internal/usecase"
)

// PurchaseOrderStatusRequest はステータス遷移の入力です。
type PurchaseOrderStatusRequest struct {
	Status string `json:"status"`
}

type PurchaseOrderHandler struct {
	uc *usecase.PurchaseOrderUsecase
}

// DI
func NewPurchaseOrderHandler(uc *usecase.PurchaseOrderUsecase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// 発注はSTORE_MANAGER以上だけ
func (h *PurchaseOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/api/purchase-orders")

	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.RoleGuard(model.RoleStoreManager, model.RoleAdmin))

	g.POST("", h.create)
	g.GET("", h.list)
	g.PUT("/:id/status", h.updateStatus)
}

func (h *PurchaseOrderHandler) create(c echo.Context) error {
	var req usecase.CreatePurchaseOrderInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	po, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, po)
}

func (h *PurchaseOrderHandler) list(c echo.Context) error {
	orders, err := h.uc.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *PurchaseOrderHandler) updateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req PurchaseOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	po, err := h.uc.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, po)
}
