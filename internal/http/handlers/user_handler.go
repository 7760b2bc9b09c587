package handlers

import (
	"github.com/creatorlane/backend/internal/middleware"
	"github.com/creatorlane/backend/internal/repositories"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userRepo *repositories.UserRepo
	log      *zap.Logger
}

func NewUserHandler(userRepo *repositories.UserRepo, log *zap.Logger) *UserHandler {
	return &UserHandler{userRepo: userRepo, log: log}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	user, err := h.userRepo.GetByID(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

func (h *UserHandler) Ping(c *fiber.Ctx) error {
	if err := h.userRepo.UpdateLastActive(c.Context(), middleware.GetUserID(c)); err != nil {
		h.log.Error("failed to update last_active", zap.Error(err))
	}
	return ok(c, nil)
}
