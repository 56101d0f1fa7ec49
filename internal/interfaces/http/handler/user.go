package handler

import (
	"report-ai-api/internal/domain/repository"
	"report-ai-api/internal/infrastructure/persistence/redis"
	"report-ai-api/internal/interfaces/http/dto"
	"report-ai-api/internal/interfaces/http/middleware"
	"report-ai-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	userRepo repository.UserRepository
	cache    *redis.Cache
}

// NewUserHandler 创建用户处理器
func NewUserHandler(userRepo repository.UserRepository, cache *redis.Cache) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
		cache:    cache,
	}
}

// Me 获取当前用户信息
// @Summary 获取当前用户
// @Description 获取当前登录用户的完整资料
// @Tags Users
// @Produce json
// @Success 200 {object} dto.Response[dto.UserResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to get user")
		return
	}
	if user == nil {
		dto.NotFound(c, "user not found")
		return
	}

	dto.Success(c, dto.ToUserResponse(user))
}

// UpdateProfile 更新当前用户资料
// @Summary 更新用户资料
// @Description 部分更新当前用户的个人资料字段
// @Tags Users
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfileRequest true "资料字段"
// @Success 200 {object} dto.Response[dto.UserResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to get user")
		return
	}
	if user == nil {
		dto.NotFound(c, "user not found")
		return
	}

	req.ApplyToUser(user)

	if err := h.userRepo.Update(ctx, user); err != nil {
		logger.Error(ctx, "failed to update user", err)
		dto.InternalError(c, "failed to update user")
		return
	}

	// 资料变更后失效门禁缓存，下次请求重新判定
	if h.cache != nil {
		if err := h.cache.InvalidateProfileStatus(ctx, userID); err != nil {
			logger.Warn(ctx, "failed to invalidate profile status cache", "error", err, "user_id", userID)
		}
	}

	dto.Success(c, dto.ToUserResponse(user))
}

// ProfileStatus 查询资料完整性状态
// @Summary 资料完整性状态
// @Description 返回资料是否完整及缺失字段列表
// @Tags Users
// @Produce json
// @Success 200 {object} dto.Response[dto.ProfileStatusResponse]
// @Router /v1/users/me/profile-status [get]
func (h *UserHandler) ProfileStatus(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to get user")
		return
	}
	if user == nil {
		dto.NotFound(c, "user not found")
		return
	}

	dto.Success(c, &dto.ProfileStatusResponse{
		Complete:      user.ProfileComplete(),
		MissingFields: user.MissingProfileFields(),
	})
}
