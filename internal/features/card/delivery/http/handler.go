package http

import (
	"net/http"

	apperrors "cantine-backend/internal/common/errors"
	"cantine-backend/internal/common/middleware"
	"cantine-backend/internal/features/card/models"
	cardservice "cantine-backend/internal/features/card/service"

	"github.com/gin-gonic/gin"
)

type CardHandler struct {
	service cardservice.CardService
}

func NewCardHandler(service cardservice.CardService) *CardHandler {
	return &CardHandler{
		service: service,
	}
}

func (h *CardHandler) RegisterRoutes(router *gin.RouterGroup) {
	card := router.Group("/card")
	{
		card.GET("", h.getCard)
		card.POST("/recharge", h.recharge)
		card.POST("/pay", h.pay)
	}
}

// @Summary Get meal card
// @Description Derived balance plus transaction history, most recent first
// @Tags card
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CardResponse "Card state"
// @Router /card [get]
func (h *CardHandler) getCard(c *gin.Context) {
	card, err := h.service.GetCard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

// @Summary Recharge the meal card
// @Description Validates the simulated card form (16-digit number, MM/YY expiry, 3-4 digit CVV, 5-500 amount) and, after a simulated processing delay, appends a recharge transaction. The first failing check is the only error returned.
// @Tags card
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recharge body models.RechargeInput true "Card form"
// @Success 201 {object} models.TransactionResult "New transaction and balance"
// @Failure 409 {object} map[string]interface{} "A recharge is already processing"
// @Failure 422 {object} map[string]interface{} "Validation failure"
// @Router /card/recharge [post]
func (h *CardHandler) recharge(c *gin.Context) {
	var input models.RechargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Recharge(c.Request.Context(), middleware.UserID(c), &input)
	if err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	c.JSON(http.StatusCreated, result)
}

// @Summary Pay for a dish
// @Description Debits the dish price from the derived balance
// @Tags card
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payment body models.PaymentInput true "Dish to pay"
// @Success 201 {object} models.TransactionResult "New transaction and balance"
// @Failure 422 {object} map[string]interface{} "Insufficient balance"
// @Router /card/pay [post]
func (h *CardHandler) pay(c *gin.Context) {
	var input models.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Pay(c.Request.Context(), middleware.UserID(c), &input)
	if err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	c.JSON(http.StatusCreated, result)
}

// toAppError maps each validation sentinel onto its ErrorKind code so the
// form can show the matching inline message.
func toAppError(err error) error {
	switch err {
	case models.ErrInvalidCardNumber:
		return apperrors.New(apperrors.ErrCodeInvalidCardNumber, "Numéro de carte invalide, veuillez saisir 16 chiffres")
	case models.ErrInvalidExpiryFormat:
		return apperrors.New(apperrors.ErrCodeInvalidExpiryFormat, "Date d'expiration invalide (format MM/YY)")
	case models.ErrCardExpired:
		return apperrors.New(apperrors.ErrCodeCardExpired, "La carte est expirée")
	case models.ErrInvalidCvv:
		return apperrors.New(apperrors.ErrCodeInvalidCvv, "CVV invalide")
	case models.ErrAmountOutOfRange:
		return apperrors.New(apperrors.ErrCodeAmountOutOfRange, "Le montant doit être entre 5€ et 500€")
	case cardservice.ErrRechargeInProgress:
		return apperrors.New(apperrors.ErrCodeRechargeInProgress, "Un rechargement est déjà en cours")
	case cardservice.ErrInsufficientBalance:
		return apperrors.New(apperrors.ErrCodeInsufficientBalance, "Solde insuffisant")
	case cardservice.ErrDishNotFound:
		return apperrors.New(apperrors.ErrCodeDishNotFound, "Dish not found")
	default:
		return err
	}
}
