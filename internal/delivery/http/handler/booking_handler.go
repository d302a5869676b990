package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/railconnect/internal/delivery/http/middleware"
	"github.com/railconnect/internal/pkg/errors"
	"github.com/railconnect/internal/pkg/utils"
	"github.com/railconnect/internal/pkg/validator"
	"github.com/railconnect/internal/usecase"
	"github.com/railconnect/internal/usecase/dto"
)

// BookingHandler - обработчик бронирований пассажира
type BookingHandler struct {
	bookingUC *usecase.BookingUseCase
	logger    *zap.Logger
}

// NewBookingHandler - создание нового BookingHandler
func NewBookingHandler(bookingUC *usecase.BookingUseCase, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		bookingUC: bookingUC,
		logger:    logger,
	}
}

// Create godoc
// @Summary Забронировать билет
// @Description Бронирует билет между двумя станциями маршрута поезда. Места списываются атомарно; при нехватке мест возвращается 409.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Параметры бронирования"
// @Success 201 {object} utils.SuccessResponse{data=domain.Booking}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	booking, err := h.bookingUC.Create(c.Context(), middleware.Principal(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, booking)
}

// List godoc
// @Summary Мои бронирования
// @Description Возвращает бронирования текущего пользователя, новые первыми
// @Tags Bookings
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Booking}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	bookings, err := h.bookingUC.ListForUser(c.Context(), middleware.Principal(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, bookings, &utils.Meta{Total: len(bookings)})
}

// Get godoc
// @Summary Бронирование по ID
// @Tags Bookings
// @Produce json
// @Param id path int true "ID бронирования"
// @Success 200 {object} utils.SuccessResponse{data=domain.Booking}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/bookings/{id} [get]
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid booking ID"))
	}

	booking, err := h.bookingUC.GetByID(c.Context(), middleware.Principal(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, booking, nil)
}

// Cancel godoc
// @Summary Отменить бронирование
// @Description Отменяет бронирование и возвращает места поезду. Поездки с прошедшей датой не отменяются.
// @Tags Bookings
// @Produce json
// @Param id path int true "ID бронирования"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/bookings/{id} [delete]
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid booking ID"))
	}

	if err := h.bookingUC.Cancel(c.Context(), middleware.Principal(c), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"cancelled": true}, nil)
}
