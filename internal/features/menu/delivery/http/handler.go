package http

import (
	"io"
	"net/http"

	apperrors "cantine-backend/internal/common/errors"
	"cantine-backend/internal/common/middleware"
	"cantine-backend/internal/features/menu/models"
	menuservice "cantine-backend/internal/features/menu/service"

	"github.com/gin-gonic/gin"
)

// Uploaded dish photos are capped at 2 MiB.
const maxImageSize = 2 << 20

type MenuHandler struct {
	service menuservice.MenuService
}

func NewMenuHandler(service menuservice.MenuService) *MenuHandler {
	return &MenuHandler{
		service: service,
	}
}

func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	menu := router.Group("/menu")
	{
		menu.GET("/week", h.getWeeklyMenu)
		menu.GET("/dishes/:id", h.getDish)
		menu.GET("/dishes/:id/image", h.getDishImage)
		menu.GET("/queues", h.getQueueInfo)
	}
}

func (h *MenuHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	menu := router.Group("/menu")
	{
		menu.GET("/dishes", h.listDishes)
		menu.POST("/dishes", h.createDish)
		menu.PUT("/dishes/:id", h.updateDish)
		menu.DELETE("/dishes/:id", h.deleteDish)
		menu.PUT("/dishes/:id/image", h.uploadDishImage)
	}
}

// @Summary Get weekly menu
// @Description Get the current weekly menu with dishes grouped by day and stand
// @Tags menu
// @Produce json
// @Success 200 {object} models.WeeklyMenu "Weekly menu"
// @Failure 404 {object} map[string]interface{} "No menu published"
// @Router /menu/week [get]
func (h *MenuHandler) getWeeklyMenu(c *gin.Context) {
	menu, err := h.service.GetWeeklyMenu(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	c.JSON(http.StatusOK, menu)
}

// @Summary Get dish
// @Description Get a dish with nutrition facts, sourcing and allergens
// @Tags menu
// @Produce json
// @Param id path string true "Dish ID"
// @Success 200 {object} models.Dish "Dish"
// @Failure 404 {object} map[string]interface{} "Dish not found"
// @Router /menu/dishes/{id} [get]
func (h *MenuHandler) getDish(c *gin.Context) {
	dish, err := h.service.GetDish(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	c.JSON(http.StatusOK, dish)
}

// @Summary Get dish image
// @Tags menu
// @Produce octet-stream
// @Param id path string true "Dish ID"
// @Success 200 {string} binary "Image bytes"
// @Failure 404 {object} map[string]interface{} "No image"
// @Router /menu/dishes/{id}/image [get]
func (h *MenuHandler) getDishImage(c *gin.Context) {
	contentType, data, err := h.service.GetDishImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	c.Data(http.StatusOK, contentType, data)
}

// @Summary Get queue info
// @Description Current headcount and estimated wait per stand
// @Tags menu
// @Produce json
// @Success 200 {object} models.QueueInfo "Queue info"
// @Router /menu/queues [get]
func (h *MenuHandler) getQueueInfo(c *gin.Context) {
	info, err := h.service.GetQueueInfo(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// @Summary List dishes (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Dish "All dishes"
// @Router /admin/menu/dishes [get]
func (h *MenuHandler) listDishes(c *gin.Context) {
	dishes, err := h.service.ListDishes(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dishes)
}

// @Summary Create dish (admin)
// @Description Create a dish; when the date query is set, the dish is also placed on that day's stand
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date query string false "Menu date (YYYY-MM-DD)"
// @Param dish body models.DishCreate true "Dish"
// @Success 201 {object} models.Dish "Created dish"
// @Failure 422 {object} map[string]interface{} "Invalid input"
// @Router /admin/menu/dishes [post]
func (h *MenuHandler) createDish(c *gin.Context) {
	var input models.DishCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dish, err := h.service.CreateDish(c.Request.Context(), &input, c.Query("date"))
	if err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	c.JSON(http.StatusCreated, dish)
}

// @Summary Update dish (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dish ID"
// @Param dish body models.DishUpdate true "Dish"
// @Success 200 {object} models.Dish "Updated dish"
// @Failure 404 {object} map[string]interface{} "Dish not found"
// @Router /admin/menu/dishes/{id} [put]
func (h *MenuHandler) updateDish(c *gin.Context) {
	var input models.DishUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dish, err := h.service.UpdateDish(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	c.JSON(http.StatusOK, dish)
}

// @Summary Delete dish (admin)
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Dish ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]interface{} "Dish not found"
// @Router /admin/menu/dishes/{id} [delete]
func (h *MenuHandler) deleteDish(c *gin.Context) {
	if err := h.service.DeleteDish(c.Request.Context(), c.Param("id")); err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Upload dish image (admin)
// @Description Accepts a multipart image file and associates it with the dish
// @Tags admin
// @Accept mpfd
// @Security BearerAuth
// @Param id path string true "Dish ID"
// @Param image formData file true "Image file"
// @Success 204 "Stored"
// @Failure 404 {object} map[string]interface{} "Dish not found"
// @Router /admin/menu/dishes/{id}/image [put]
func (h *MenuHandler) uploadDishImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.service.UploadDishImage(c.Request.Context(), c.Param("id"), contentType, data); err != nil {
		middleware.RespondError(c, toAppError(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func toAppError(err error) error {
	switch err {
	case menuservice.ErrDishNotFound:
		return apperrors.New(apperrors.ErrCodeDishNotFound, "Dish not found")
	case menuservice.ErrMenuNotFound:
		return apperrors.New(apperrors.ErrCodeMenuNotFound, "No weekly menu published")
	case menuservice.ErrImageNotFound:
		return apperrors.NewNotFoundError("dish image", nil)
	case models.ErrInvalidCategory, models.ErrInvalidPrice:
		return apperrors.New(apperrors.ErrCodeValidation, err.Error())
	default:
		return err
	}
}
