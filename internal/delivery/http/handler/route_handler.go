package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/railconnect/internal/pkg/errors"
	"github.com/railconnect/internal/pkg/utils"
	"github.com/railconnect/internal/pkg/validator"
	"github.com/railconnect/internal/usecase"
	"github.com/railconnect/internal/usecase/dto"
)

// RouteHandler - обработчик маршрутов поездов
type RouteHandler struct {
	routeUC *usecase.RouteUseCase
	logger  *zap.Logger
}

// NewRouteHandler - создание нового RouteHandler
func NewRouteHandler(routeUC *usecase.RouteUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routeUC: routeUC,
		logger:  logger,
	}
}

// ListRoute godoc
// @Summary Маршрут поезда
// @Description Возвращает остановки поезда в порядке следования
// @Tags Admin
// @Produce json
// @Param id path int true "ID поезда"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.RouteStop}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/trains/{id}/route [get]
func (h *RouteHandler) ListRoute(c *fiber.Ctx) error {
	trainID, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	stops, err := h.routeUC.ListRoute(c.Context(), trainID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stops, &utils.Meta{Total: len(stops)})
}

// AddStop godoc
// @Summary Добавить остановку
// @Description Добавляет остановку в конец маршрута поезда и пересоздаёт сегменты. Станция не может встречаться на маршруте дважды.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "ID поезда"
// @Param request body dto.AddStopRequest true "Остановка"
// @Success 201 {object} utils.SuccessResponse{data=domain.RouteStop}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/trains/{id}/stops [post]
func (h *RouteHandler) AddStop(c *fiber.Ctx) error {
	trainID, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.AddStopRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	stop, err := h.routeUC.AddStop(c.Context(), trainID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, stop)
}

// RemoveStop godoc
// @Summary Удалить остановку
// @Description Удаляет остановку маршрута и пересоздаёт сегменты из оставшегося порядка остановок
// @Tags Admin
// @Produce json
// @Param id path int true "ID поезда"
// @Param stopId path int true "ID остановки"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/trains/{id}/stops/{stopId} [delete]
func (h *RouteHandler) RemoveStop(c *fiber.Ctx) error {
	stopID, err := paramID(c, "stopId")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.routeUC.RemoveStop(c.Context(), stopID); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
