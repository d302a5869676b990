package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/railconnect/internal/pkg/utils"
	"github.com/railconnect/internal/usecase"
	"github.com/railconnect/internal/usecase/dto"
)

// SearchHandler - обработчик поиска поездов
type SearchHandler struct {
	searchUC *usecase.SearchUseCase
	logger   *zap.Logger
}

// NewSearchHandler - создание нового SearchHandler
func NewSearchHandler(searchUC *usecase.SearchUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// Search godoc
// @Summary Поиск поездов между станциями
// @Description Возвращает поезда, у которых обе станции лежат на маршруте в порядке следования. Без параметров возвращает весь каталог, включая поезда без настроенного маршрута.
// @Tags Search
// @Accept json
// @Produce json
// @Param from query string false "Станция отправления (подстрока имени)"
// @Param to query string false "Станция назначения (подстрока имени)"
// @Success 200 {object} utils.SuccessResponse{data=dto.SearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/trains [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	req := dto.SearchTrainsRequest{
		From: c.Query("from"),
		To:   c.Query("to"),
	}

	result, err := h.searchUC.Search(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
