package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/railconnect/internal/pkg/utils"
	"github.com/railconnect/internal/usecase"
)

// PNRHandler - обработчик публичного поиска по PNR
type PNRHandler struct {
	bookingUC *usecase.BookingUseCase
	logger    *zap.Logger
}

// NewPNRHandler - создание нового PNRHandler
func NewPNRHandler(bookingUC *usecase.BookingUseCase, logger *zap.Logger) *PNRHandler {
	return &PNRHandler{
		bookingUC: bookingUC,
		logger:    logger,
	}
}

// Lookup godoc
// @Summary Статус билета по PNR
// @Description Возвращает бронирование по PNR. Ввод нормализуется: пробелы обрезаются, регистр приводится к верхнему.
// @Tags PNR
// @Produce json
// @Param pnr path string true "Номер PNR (например PNR123456)"
// @Success 200 {object} utils.SuccessResponse{data=domain.Booking}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/pnr/{pnr} [get]
func (h *PNRHandler) Lookup(c *fiber.Ctx) error {
	booking, err := h.bookingUC.LookupPNR(c.Context(), c.Params("pnr"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, booking, nil)
}
