package middleware

import (
	"net/http"

	"smartshelf/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleが許可リストに含まれるかを確認します。
//操作ごとの権限表はroutes側で宣言する。

func RoleGuard(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			for _, a := range allowed {
				if model.Role(role) == a {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
		}
	}
}
