package handlers

import (
	"strings"

	"github.com/creatorlane/backend/internal/auth"
	"github.com/creatorlane/backend/internal/config"
	"github.com/creatorlane/backend/internal/http/dto"
	"github.com/creatorlane/backend/internal/models"
	"github.com/creatorlane/backend/internal/repositories"
	"github.com/creatorlane/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userRepo          *repositories.UserRepo
	invitationService *services.InvitationService
	cfg               *config.Config
	log               *zap.Logger
}

func NewAuthHandler(userRepo *repositories.UserRepo, invitationService *services.InvitationService, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, invitationService: invitationService, cfg: cfg, log: log}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email and password are required")
	}
	if len(req.Password) < 8 {
		return badRequest(c, "password must be at least 8 characters")
	}
	if !models.IsValidRole(req.Role) {
		return badRequest(c, "role must be brand, agency or creator")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error("password hash failed", zap.Error(err))
		return fail(c, err)
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		Role:         req.Role,
		PasswordHash: hash,
	}
	if err := h.userRepo.Create(c.Context(), user); err != nil {
		return fail(c, err)
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID, user.Role, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("jwt generation failed", zap.Error(err))
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	user, err := h.userRepo.GetByEmail(c.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid credentials"})
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid credentials"})
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID, user.Role, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("jwt generation failed", zap.Error(err))
		return fail(c, err)
	}

	return c.JSON(dto.AuthResponse{Token: token, User: user})
}

// ResolveInvitation previews the campaign behind an invite token so a
// signup page can show what is being joined. Public, no auth.
func (h *AuthHandler) ResolveInvitation(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return badRequest(c, "token is required")
	}

	inv, err := h.invitationService.Resolve(c.Context(), token)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, inv)
}
