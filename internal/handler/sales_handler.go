package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"smartshelf/internal/config"
	"smartshelf/internal/domain/model"
	"smartshelf/internal/middleware"
	"smartshelf/internal/repository"
	"smartshelf/internal/usecase"
)

// /api/sales と /api/sales/report をまとめる
type SalesHandler struct {
	uc *usecase.SalesUsecase
}

// DI
func NewSalesHandler(uc *usecase.SalesUsecase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// 販売の記録はログイン済みなら誰でも（レジ端末想定）。レポートはSTORE_MANAGER以上。
func (h *SalesHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/api")

	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.POST("/sales", h.recordSale)

	manager := g.Group("", middleware.RoleGuard(model.RoleStoreManager, model.RoleAdmin))
	manager.GET("/sales/report", h.report)
}

func (h *SalesHandler) recordSale(c echo.Context) error {
	var req usecase.RecordSaleInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.RecordSale(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SalesHandler) report(c echo.Context) error {
	var in usecase.SalesReportInput

	// 片方だけの指定は絞り込みなし扱い（usecase側で判断）
	if v := c.QueryParam("startDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid startDate"})
		}
		in.StartDate = &t
	}
	if v := c.QueryParam("endDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid endDate"})
		}
		in.EndDate = &t
	}

	rows, err := h.uc.GetSalesReport(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, rows)
}
