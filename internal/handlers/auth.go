package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/dailycare/internal/middleware"
	"github.com/example/dailycare/internal/models"
	"github.com/example/dailycare/internal/services"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db       *gorm.DB
	auth     *services.AuthService
	validate *validator.Validate
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, auth *services.AuthService) *AuthHandler {
	return &AuthHandler{db: db, auth: auth, validate: validator.New()}
}

type registerRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName string  `json:"full_name" validate:"required"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,e164"`
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Register(req.Email, req.Password, req.FullName, req.Phone)
	if err != nil {
		return mapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates an existing user with email and password.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	token, err := h.auth.AuthenticateByPassword(req.Email, req.Password)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

type otpRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// SendOTP issues a one-time code to a registered phone number.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req otpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	result, err := h.auth.RequestOTP(req.Phone)
	if err != nil {
		return mapServiceError(err)
	}

	resp := fiber.Map{
		"message": "verification code sent",
		"phone":   req.Phone,
		"sent":    result.Sent,
	}
	if !result.Sent {
		resp["message"] = "verification code generated (SMS delivery unavailable)"
		if result.DebugCode != "" {
			resp["otp_debug"] = result.DebugCode
		}
	}

	return c.JSON(resp)
}

type otpVerifyRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"otp" validate:"required,len=6,numeric"`
}

// VerifyOTP exchanges a valid one-time code for a bearer token.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req otpVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	token, err := h.auth.VerifyOTP(req.Phone, req.Code)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{"success": true, "data": user})
}

type updateProfileRequest struct {
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,e164"`
	Address  string  `json:"address"`
}

// UpdateMe updates profile fields of the authenticated user.
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	updates := map[string]interface{}{}
	if req.FullName != "" {
		updates["full_name"] = req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = req.Phone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if len(updates) == 0 {
		return c.JSON(fiber.Map{"success": true, "data": user})
	}

	if err := h.db.Model(user).Updates(updates).Error; err != nil {
		return err
	}

	var updated models.User
	if err := h.db.First(&updated, "id = ?", user.ID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": updated})
}
