package http

import (
	"net/http"

	apperrors "cantine-backend/internal/common/errors"
	"cantine-backend/internal/common/middleware"
	"cantine-backend/internal/features/auth/models"
	authservice "cantine-backend/internal/features/auth/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service authservice.AuthService
}

func NewAuthHandler(service authservice.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

// @Summary Register
// @Description Create an account and receive a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param account body models.RegisterInput true "Account"
// @Success 201 {object} models.AuthResponse "Token and account"
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &input)
	if err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginInput true "Credentials"
// @Success 200 {object} models.AuthResponse "Token and account"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &input)
	if err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func toAppError(err error) error {
	switch err {
	case authservice.ErrEmailTaken:
		return apperrors.New(apperrors.ErrCodeEmailTaken, "Email already registered")
	case authservice.ErrInvalidCredentials:
		return apperrors.NewUnauthorizedError("invalid email or password")
	default:
		return err
	}
}
