package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/autonomo-pro/internal/application/dto"
	"github.com/tu-usuario/autonomo-pro/internal/application/profile"
)

// ProfessionalHandler gestiona el perfil único del autónomo.
type ProfessionalHandler struct {
	uc *profile.UseCase
}

// NewProfessionalHandler construye el handler.
func NewProfessionalHandler(uc *profile.UseCase) *ProfessionalHandler {
	return &ProfessionalHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener el perfil del profesional
// @Tags         professional
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfessionalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/professional [get]
func (h *ProfessionalHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Crear o sustituir el perfil del profesional
// @Tags         professional
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveProfessionalRequest  true  "Perfil completo"
// @Success      200   {object}  dto.ProfessionalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/professional [put]
func (h *ProfessionalHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveProfessionalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Save(c.UserContext(), in)
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}
