package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/autonomo-pro/internal/application/dto"
	"github.com/tu-usuario/autonomo-pro/internal/application/records"
	"github.com/tu-usuario/autonomo-pro/internal/domain"
)

// RecordHandler maneja las peticiones HTTP del libro registro (protegido).
type RecordHandler struct {
	uc *records.UseCase
}

// NewRecordHandler construye el handler.
func NewRecordHandler(uc *records.UseCase) *RecordHandler {
	return &RecordHandler{uc: uc}
}

// Create godoc
// @Summary      Dar de alta un apunte
// @Tags         records
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveRecordRequest  true  "Datos del apunte"
// @Success      201   {object}  dto.SaveRecordResponse
// @Success      200   {object}  dto.SaveRecordResponse  "No guardado: incidencias en check"
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/records [post]
func (h *RecordHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return statusFromError(c, err)
	}
	if !out.Saved {
		// Las incidencias viajan como datos; el formulario decide qué mostrar.
		return c.JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar un apunte por sustitución completa
// @Tags         records
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del apunte"
// @Param        body  body  dto.SaveRecordRequest  true  "Apunte completo"
// @Success      200   {object}  dto.SaveRecordResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/records/{id} [put]
func (h *RecordHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.SaveRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un apunte
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del apunte"
// @Success      200  {object}  dto.RecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/records/{id} [get]
func (h *RecordHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar el libro registro
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        year     query  int     false  "Ejercicio"
// @Param        quarter  query  int     false  "Trimestre 1..4"
// @Param        kind     query  string  false  "INCOME | EXPENSE"
// @Success      200  {array}  dto.RecordResponse
// @Router       /api/records [get]
func (h *RecordHandler) List(c *fiber.Ctx) error {
	year := c.QueryInt("year", 0)
	quarter := c.QueryInt("quarter", 0)
	kind := c.Query("kind")
	out, err := h.uc.List(c.UserContext(), year, quarter, kind)
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar un apunte
// @Tags         records
// @Security     Bearer
// @Param        id  path  string  true  "ID del apunte"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/records/{id} [delete]
func (h *RecordHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return statusFromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkDelete godoc
// @Summary      Borrar varios apuntes
// @Tags         records
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.BulkDeleteRequest  true  "IDs a borrar"
// @Success      204
// @Router       /api/records/bulk-delete [post]
func (h *RecordHandler) BulkDelete(c *fiber.Ctx) error {
	var in dto.BulkDeleteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.BulkDelete(c.UserContext(), in.IDs); err != nil {
		return statusFromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// NextNumber godoc
// @Summary      Proyectar el siguiente número de documento
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        kind  query  string  true  "INCOME | EXPENSE"
// @Param        year  query  int     true  "Ejercicio"
// @Success      200   {object}  dto.NextNumberResponse
// @Router       /api/records/next-number [get]
func (h *RecordHandler) NextNumber(c *fiber.Ctx) error {
	out, err := h.uc.NextNumber(c.UserContext(), c.Query("kind"), c.QueryInt("year", 0))
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}

// ValidateTaxID godoc
// @Summary      Validar un identificador fiscal
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        value  query  string  true  "NIF/NIE/CIF a validar"
// @Success      200    {object}  dto.ValidateTaxIDResponse
// @Router       /api/taxid/validate [get]
func (h *RecordHandler) ValidateTaxID(c *fiber.Ctx) error {
	return c.JSON(h.uc.ValidateTaxID(c.Query("value")))
}

// statusFromError traduce los errores de dominio a códigos HTTP.
func statusFromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateDocumentNumber):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "número de documento duplicado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
