package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartshelf/internal/config"
	"smartshelf/internal/domain/model"
	"smartshelf/internal/middleware"
	"smartshelf/internal/repository"
	"smartshelf/internal/usecase"
)

type ForecastHandler struct {
	uc *usecase.ForecastUsecase
}

// DI
func NewForecastHandler(uc *usecase.ForecastUsecase) *ForecastHandler {
	return &ForecastHandler{uc: uc}
}

// 需要予測はSTORE_MANAGER以上だけ
func (h *ForecastHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/api")

	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.RoleGuard(model.RoleStoreManager, model.RoleAdmin))

	g.GET("/forecast", h.forecast)
}

func (h *ForecastHandler) forecast(c echo.Context) error {
	rows, err := h.uc.GenerateForecast(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, rows)
}
