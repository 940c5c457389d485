package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smartshelf/internal/domain/model"
	"smartshelf/internal/usecase"
)

// 昇格でJWTのtvが無効になる（token_versionが進み、refreshも全削除）
func TestUserUsecase_Promote_InvalidatesOldTokens(t *testing.T) {
	users := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := usecase.NewUserUsecase(users, rtRepo)

	users.On("FindByID", mock.Anything, int64(3)).Return(&model.User{ID: 3, Role: model.RoleUser}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleStoreManager
	})).Return(nil)
	users.On("IncrementTokenVersion", mock.Anything, int64(3)).Return(nil)
	rtRepo.On("DeleteAllByUserID", mock.Anything, int64(3)).Return(nil)

	res, err := uc.Promote(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, "STORE_MANAGER", res.Role)

	users.AssertExpectations(t)
	rtRepo.AssertExpectations(t)
}

func TestUserUsecase_Demote_ToUser(t *testing.T) {
	users := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := usecase.NewUserUsecase(users, rtRepo)

	users.On("FindByID", mock.Anything, int64(3)).Return(&model.User{ID: 3, Role: model.RoleStoreManager}, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)
	users.On("IncrementTokenVersion", mock.Anything, int64(3)).Return(nil)
	rtRepo.On("DeleteAllByUserID", mock.Anything, int64(3)).Return(nil)

	res, err := uc.Demote(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, "USER", res.Role)
}

// ADMIN自身のロールは変更できない
func TestUserUsecase_ChangeRole_AdminProtected(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewUserUsecase(users, new(RefreshTokenRepoMock))

	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Role: model.RoleAdmin}, nil)

	_, err := uc.Demote(context.Background(), 1)
	assertErrContains(t, err, "cannot change admin role")

	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserUsecase_ChangeRole_NotFound(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewUserUsecase(users, new(RefreshTokenRepoMock))

	users.On("FindByID", mock.Anything, int64(99)).Return(nil, nil)

	_, err := uc.Promote(context.Background(), 99)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}
