package usecase

import (
	"context"
	"net/http"

	"smartshelf/internal/domain/model"
	"smartshelf/internal/repository"
)

type UserUsecase struct {
	users  repository.UserRepository
	rtRepo repository.RefreshTokenRepository
}

// DI
func NewUserUsecase(users repository.UserRepository, rtRepo repository.RefreshTokenRepository) *UserUsecase {
	return &UserUsecase{
		users:  users,
		rtRepo: rtRepo,
	}
}

type RoleChangeResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
	Role    string `json:"role"`
}

// 管理者向けのユーザー一覧
func (u *UserUsecase) ListUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, toUserDTO(&users[i]))
	}
	return dtos, nil
}

// USER → STORE_MANAGERへ昇格
func (u *UserUsecase) Promote(ctx context.Context, targetUserID int64) (*RoleChangeResponse, error) {
	return u.changeRole(ctx, targetUserID, model.RoleStoreManager, "User promoted to STORE_MANAGER")
}

// STORE_MANAGER → USERへ降格
func (u *UserUsecase) Demote(ctx context.Context, targetUserID int64) (*RoleChangeResponse, error) {
	return u.changeRole(ctx, targetUserID, model.RoleUser, "User demoted to USER")
}

// ロール変更。古いロールのJWTを無効化するためtoken_versionを進め、
// refresh tokenも全て破棄して再ログインさせる。
func (u *UserUsecase) changeRole(ctx context.Context, targetUserID int64, role model.Role, message string) (*RoleChangeResponse, error) {
	if targetUserID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.users.FindByID(ctx, targetUserID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if user.Role == model.RoleAdmin {
		return nil, NewHTTPError(http.StatusBadRequest, "cannot change admin role")
	}

	user.Role = role
	if err := u.users.Update(ctx, user); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.users.IncrementTokenVersion(ctx, targetUserID); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	_ = u.rtRepo.DeleteAllByUserID(ctx, targetUserID)

	return &RoleChangeResponse{
		Message: message,
		UserID:  targetUserID,
		Role:    string(role),
	}, nil
}
