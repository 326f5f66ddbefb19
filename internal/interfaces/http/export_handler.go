package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/autonomo-pro/internal/application/exports"
)

// ExportHandler expone las descargas del libro y de los modelos (protegido).
// Todas las respuestas salen con Content-Disposition para descarga directa.
type ExportHandler struct {
	uc *exports.UseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *exports.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// BookCSV godoc
// @Summary      Descargar el libro registro en CSV (es-ES, reimportable)
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Param        year  query  int  false  "Ejercicio (por defecto el actual)"
// @Success      200   {file}  file
// @Router       /api/export/book.csv [get]
func (h *ExportHandler) BookCSV(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().Year())
	out, err := h.uc.BookCSV(c.UserContext(), year)
	if err != nil {
		return statusFromError(c, err)
	}
	return h.send(c, out, "text/csv; charset=utf-8", fmt.Sprintf("libro-%d.csv", year))
}

// BookXLSX godoc
// @Summary      Descargar el libro registro en XLSX con hoja de modelos
// @Tags         export
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        year  query  int  false  "Ejercicio (por defecto el actual)"
// @Success      200   {file}  file
// @Router       /api/export/book.xlsx [get]
func (h *ExportHandler) BookXLSX(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().Year())
	out, err := h.uc.BookXLSX(c.UserContext(), year)
	if err != nil {
		return statusFromError(c, err)
	}
	const mime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	return h.send(c, out, mime, fmt.Sprintf("libro-%d.xlsx", year))
}

// SummaryPDF godoc
// @Summary      Descargar el resumen de modelos del ejercicio en PDF
// @Tags         export
// @Security     Bearer
// @Produce      application/pdf
// @Param        year  query  int  false  "Ejercicio (por defecto el actual)"
// @Success      200   {file}  file
// @Router       /api/export/summary.pdf [get]
func (h *ExportHandler) SummaryPDF(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().Year())
	out, err := h.uc.SummaryPDF(c.UserContext(), year)
	if err != nil {
		return statusFromError(c, err)
	}
	return h.send(c, out, "application/pdf", fmt.Sprintf("resumen-fiscal-%d.pdf", year))
}

// BookPDF godoc
// @Summary      Descargar el libro registro del ejercicio en PDF
// @Tags         export
// @Security     Bearer
// @Produce      application/pdf
// @Param        year  query  int  false  "Ejercicio (por defecto el actual)"
// @Success      200   {file}  file
// @Router       /api/export/book.pdf [get]
func (h *ExportHandler) BookPDF(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().Year())
	out, err := h.uc.BookPDF(c.UserContext(), year)
	if err != nil {
		return statusFromError(c, err)
	}
	return h.send(c, out, "application/pdf", fmt.Sprintf("libro-%d.pdf", year))
}

// Facturae godoc
// @Summary      Generar el XML Facturae 3.2.2 de una factura emitida
// @Tags         export
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID del apunte (debe ser INCOME)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/export/facturae/{id} [get]
func (h *ExportHandler) Facturae(c *fiber.Ctx) error {
	out, filename, err := h.uc.FacturaeXML(c.UserContext(), c.Params("id"))
	if err != nil {
		return statusFromError(c, err)
	}
	return h.send(c, out, "application/xml; charset=utf-8", filename)
}

func (h *ExportHandler) send(c *fiber.Ctx, body []byte, contentType, filename string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
