package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/railconnect/internal/pkg/errors"
	"github.com/railconnect/internal/pkg/utils"
	"github.com/railconnect/internal/pkg/validator"
	"github.com/railconnect/internal/usecase"
	"github.com/railconnect/internal/usecase/dto"
)

// AdminHandler - обработчик админ-панели: справочники, пользователи,
// бронирования и отчёты
type AdminHandler struct {
	adminUC *usecase.AdminUseCase
	logger  *zap.Logger
}

// NewAdminHandler - создание нового AdminHandler
func NewAdminHandler(adminUC *usecase.AdminUseCase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminUC: adminUC,
		logger:  logger,
	}
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, errors.ErrInvalidRequest.WithMessage("Invalid %s", name)
	}
	return id, nil
}

// --- Stations ---

// CreateStation godoc
// @Summary Создать станцию
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateStationRequest true "Станция"
// @Success 201 {object} utils.SuccessResponse{data=domain.Station}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/admin/stations [post]
func (h *AdminHandler) CreateStation(c *fiber.Ctx) error {
	var req dto.CreateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	station, err := h.adminUC.CreateStation(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, station)
}

// ListStations godoc
// @Summary Список станций
// @Tags Admin
// @Produce json
// @Param q query string false "Фильтр по имени или коду"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Station}
// @Router /api/v1/admin/stations [get]
func (h *AdminHandler) ListStations(c *fiber.Ctx) error {
	stations, err := h.adminUC.ListStations(c.Context(), c.Query("q"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stations, &utils.Meta{Total: len(stations)})
}

// GetStation godoc
// @Summary Станция по ID
// @Tags Admin
// @Produce json
// @Param id path int true "ID станции"
// @Success 200 {object} utils.SuccessResponse{data=domain.Station}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/stations/{id} [get]
func (h *AdminHandler) GetStation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	station, err := h.adminUC.GetStation(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, station, nil)
}

// UpdateStation godoc
// @Summary Обновить станцию
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "ID станции"
// @Param request body dto.UpdateStationRequest true "Станция"
// @Success 200 {object} utils.SuccessResponse{data=domain.Station}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/stations/{id} [put]
func (h *AdminHandler) UpdateStation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	station, err := h.adminUC.UpdateStation(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, station, nil)
}

// DeleteStation godoc
// @Summary Удалить станцию
// @Description Станция, на которую ссылаются маршруты или бронирования, не удаляется (409 IN_USE)
// @Tags Admin
// @Produce json
// @Param id path int true "ID станции"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/admin/stations/{id} [delete]
func (h *AdminHandler) DeleteStation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.adminUC.DeleteStation(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// --- Trains ---

// CreateTrain godoc
// @Summary Создать поезд
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateTrainRequest true "Поезд"
// @Success 201 {object} utils.SuccessResponse{data=domain.Train}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/admin/trains [post]
func (h *AdminHandler) CreateTrain(c *fiber.Ctx) error {
	var req dto.CreateTrainRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	train, err := h.adminUC.CreateTrain(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, train)
}

// ListTrains godoc
// @Summary Список поездов
// @Tags Admin
// @Produce json
// @Param q query string false "Фильтр по имени или номеру"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Train}
// @Router /api/v1/admin/trains [get]
func (h *AdminHandler) ListTrains(c *fiber.Ctx) error {
	trains, err := h.adminUC.ListTrains(c.Context(), c.Query("q"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, trains, &utils.Meta{Total: len(trains)})
}

// GetTrain godoc
// @Summary Поезд по ID
// @Tags Admin
// @Produce json
// @Param id path int true "ID поезда"
// @Success 200 {object} utils.SuccessResponse{data=domain.Train}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/trains/{id} [get]
func (h *AdminHandler) GetTrain(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	train, err := h.adminUC.GetTrain(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, train, nil)
}

// UpdateTrain godoc
// @Summary Обновить поезд
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "ID поезда"
// @Param request body dto.UpdateTrainRequest true "Поезд"
// @Success 200 {object} utils.SuccessResponse{data=domain.Train}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/trains/{id} [put]
func (h *AdminHandler) UpdateTrain(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateTrainRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	train, err := h.adminUC.UpdateTrain(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, train, nil)
}

// DeleteTrain godoc
// @Summary Удалить поезд
// @Description Поезд с бронированиями не удаляется (409 IN_USE); маршрут и сегменты удаляются каскадом
// @Tags Admin
// @Produce json
// @Param id path int true "ID поезда"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/admin/trains/{id} [delete]
func (h *AdminHandler) DeleteTrain(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.adminUC.DeleteTrain(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// --- Users ---

// CreateUser godoc
// @Summary Создать пользователя
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Пользователь"
// @Success 201 {object} utils.SuccessResponse{data=domain.User}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/admin/users [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.adminUC.CreateUser(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, user)
}

// ListUsers godoc
// @Summary Список пользователей
// @Tags Admin
// @Produce json
// @Param q query string false "Фильтр по имени или email"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.User}
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.adminUC.ListUsers(c.Context(), c.Query("q"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, users, &utils.Meta{Total: len(users)})
}

// GetUser godoc
// @Summary Пользователь по ID
// @Tags Admin
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.adminUC.GetUser(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// UpdateUser godoc
// @Summary Обновить пользователя
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param request body dto.UpdateUserRequest true "Пользователь"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.adminUC.UpdateUser(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// DeleteUser godoc
// @Summary Удалить пользователя
// @Tags Admin
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.adminUC.DeleteUser(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// --- Bookings ---

// ListBookings godoc
// @Summary Список бронирований
// @Tags Admin
// @Produce json
// @Param q query string false "Фильтр по PNR или имени пользователя"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Booking}
// @Router /api/v1/admin/bookings [get]
func (h *AdminHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.adminUC.ListBookings(c.Context(), c.Query("q"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, bookings, &utils.Meta{Total: len(bookings)})
}

// DeleteBooking godoc
// @Summary Удалить бронирование
// @Description Удаляет бронирование и возвращает места поезду - тот же путь восстановления, что и при отмене пассажиром
// @Tags Admin
// @Produce json
// @Param id path int true "ID бронирования"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/bookings/{id} [delete]
func (h *AdminHandler) DeleteBooking(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.adminUC.DeleteBooking(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// --- Reports ---

// Dashboard godoc
// @Summary Сводка для главного экрана
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.DashboardStats}
// @Router /api/v1/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.adminUC.Dashboard(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stats, nil)
}

// Reports godoc
// @Summary Отчёт по бронированиям
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.Report}
// @Router /api/v1/admin/reports [get]
func (h *AdminHandler) Reports(c *fiber.Ctx) error {
	report, err := h.adminUC.Report(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, report, nil)
}
