package http

import (
	"net/http"

	apperrors "cantine-backend/internal/common/errors"
	"cantine-backend/internal/common/middleware"
	cardservice "cantine-backend/internal/features/card/service"
	reservationservice "cantine-backend/internal/features/reservation/service"
	"cantine-backend/internal/features/user/models"
	userservice "cantine-backend/internal/features/user/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service      userservice.UserService
	cards        cardservice.CardService
	reservations reservationservice.ReservationService
}

func NewUserHandler(service userservice.UserService, cards cardservice.CardService, reservations reservationservice.ReservationService) *UserHandler {
	return &UserHandler{
		service:      service,
		cards:        cards,
		reservations: reservations,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.PUT("/me/constraints", h.updateConstraints)
	}
}

// @Summary Get current user
// @Description Profile with derived card balance and reservations
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Profile"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/me [get]
func (h *UserHandler) getMe(c *gin.Context) {
	userID := middleware.UserID(c)

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	card, err := h.cards.GetCard(c.Request.Context(), userID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	reservations, err := h.reservations.ListMine(c.Request.Context(), userID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"card_balance": card.Balance,
		"reservations": reservations,
	})
}

// @Summary Update dietary constraints
// @Description Replace the user's allergen and dietary-regime labels
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param constraints body models.ConstraintsUpdate true "New constraint set"
// @Success 200 {object} models.UserResponse "Updated profile"
// @Router /users/me/constraints [put]
func (h *UserHandler) updateConstraints(c *gin.Context) {
	var input models.ConstraintsUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.UpdateDietaryConstraints(c.Request.Context(), middleware.UserID(c), input.Constraints)
	if err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	c.JSON(http.StatusOK, user)
}

func toAppError(err error) error {
	if err == userservice.ErrUserNotFound {
		return apperrors.New(apperrors.ErrCodeUserNotFound, "User not found")
	}
	return err
}
