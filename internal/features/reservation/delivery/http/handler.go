package http

import (
	"net/http"

	apperrors "cantine-backend/internal/common/errors"
	"cantine-backend/internal/common/middleware"
	"cantine-backend/internal/features/reservation/models"
	reservationservice "cantine-backend/internal/features/reservation/service"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	service reservationservice.ReservationService
}

func NewReservationHandler(service reservationservice.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		service: service,
	}
}

func (h *ReservationHandler) RegisterRoutes(router *gin.RouterGroup) {
	reservations := router.Group("/reservations")
	{
		reservations.POST("", h.reserve)
		reservations.GET("", h.listMine)
		reservations.DELETE("/:id", h.cancel)
	}
}

func (h *ReservationHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	reservations := router.Group("/reservations")
	{
		reservations.GET("", h.listAdmin)
		reservations.GET("/export", h.exportAdmin)
	}
}

// @Summary Reserve a dish for dinner
// @Description Book tonight's dinner. An allergen conflict is advisory: the reservation is still created and the response carries allergen_warning. Re-reserving the same dish is a no-op surfaced as already_reserved.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reservation body models.ReservationCreate true "Dish to reserve"
// @Success 200 {object} models.ReservationResponse "Existing reservation (already reserved)"
// @Success 201 {object} models.ReservationResponse "New reservation"
// @Failure 409 {object} map[string]interface{} "Another dinner already booked"
// @Failure 422 {object} map[string]interface{} "Dish not available for dinner"
// @Router /reservations [post]
func (h *ReservationHandler) reserve(c *gin.Context) {
	var input models.ReservationCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Reserve(c.Request.Context(), middleware.UserID(c), &input)
	if err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	status := http.StatusCreated
	if resp.AlreadyReserved {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

// @Summary List my reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Reservation "Reservations, newest first"
// @Router /reservations [get]
func (h *ReservationHandler) listMine(c *gin.Context) {
	reservations, err := h.service.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// @Summary Cancel a reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} models.Reservation "Cancelled reservation"
// @Failure 404 {object} map[string]interface{} "Reservation not found"
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) cancel(c *gin.Context) {
	reservation, err := h.service.Cancel(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// @Summary List reservations (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param status query string false "Filter by status" Enums(pending, confirmed, cancelled)
// @Success 200 {array} models.AdminRow "Reservation rows"
// @Router /admin/reservations [get]
func (h *ReservationHandler) listAdmin(c *gin.Context) {
	rows, err := h.service.ListAdmin(c.Request.Context(), adminFilter(c))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary Export reservations as CSV (admin)
// @Description Comma-separated blob with fixed columns: Client, Email, Phone, Dish, Date, Time, Status
// @Tags admin
// @Produce plain
// @Security BearerAuth
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param status query string false "Filter by status" Enums(pending, confirmed, cancelled)
// @Success 200 {string} string "CSV text"
// @Router /admin/reservations/export [get]
func (h *ReservationHandler) exportAdmin(c *gin.Context) {
	blob, err := h.service.ExportAdmin(c.Request.Context(), adminFilter(c))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reservations.csv"`)
	c.String(http.StatusOK, blob)
}

func adminFilter(c *gin.Context) models.AdminFilter {
	return models.AdminFilter{
		Date:   c.Query("date"),
		Status: models.Status(c.Query("status")),
	}
}

func toAppError(err error) error {
	switch err {
	case reservationservice.ErrDishNotFound:
		return apperrors.New(apperrors.ErrCodeDishNotFound, "Dish not found")
	case reservationservice.ErrReservationNotFound:
		return apperrors.New(apperrors.ErrCodeReservationNotFound, "Reservation not found")
	case reservationservice.ErrNotOwner:
		return apperrors.NewForbiddenError("reservation belongs to another user")
	case reservationservice.ErrNotAvailableForDinner:
		return apperrors.New(apperrors.ErrCodeDishNotAvailableForDinner, "Dish is not available for dinner")
	case reservationservice.ErrDinnerAlreadyBooked:
		return apperrors.New(apperrors.ErrCodeDinnerAlreadyBooked, "You already have a confirmed dinner reservation")
	default:
		return err
	}
}
