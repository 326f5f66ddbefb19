package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/autonomo-pro/internal/application/ai"
	"github.com/tu-usuario/autonomo-pro/internal/application/dto"
)

// AIHandler expone la extracción de borradores y el asesor fiscal.
// El borrador extraído nunca se guarda desde aquí; el cliente lo revisa
// y lo da de alta por /api/records.
type AIHandler struct {
	uc *ai.UseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *ai.UseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Extract godoc
// @Summary      Extraer un borrador de apunte a partir de texto de factura
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExtractRecordRequest  true  "Texto y pista de tipo"
// @Success      200   {object}  ai.ExtractResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/extract [post]
func (h *AIHandler) Extract(c *fiber.Ctx) error {
	var in dto.ExtractRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Extract(c.UserContext(), in)
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}

// Advise godoc
// @Summary      Consultar al asesor fiscal
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdviceRequest  true  "Pregunta"
// @Success      200   {object}  dto.AdviceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/advise [post]
func (h *AIHandler) Advise(c *fiber.Ctx) error {
	var in dto.AdviceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Advise(c.UserContext(), in)
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}
