package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/autonomo-pro/internal/application/reports"
)

// ReportHandler expone los modelos tributarios (protegido). quarter=0 o
// ausente significa cómputo anual.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Dashboard del ejercicio con los seis modelos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Ejercicio (por defecto el actual)"
// @Success      200   {object}  dto.FiscalSummaryDTO
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), h.year(c))
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}

// Modelo303 godoc
// @Summary      Modelo 303: autoliquidación de IVA
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year     query  int  false  "Ejercicio"
// @Param        quarter  query  int  false  "Trimestre 1..4; 0 = anual"
// @Success      200  {object}  dto.Modelo303DTO
// @Router       /api/reports/303 [get]
func (h *ReportHandler) Modelo303(c *fiber.Ctx) error {
	out, err := h.uc.Modelo303(c.UserContext(), h.year(c), c.QueryInt("quarter", 0))
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}

// Modelo390 godoc
// @Summary      Modelo 390: resumen anual de IVA
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Ejercicio"
// @Success      200   {object}  dto.Modelo390DTO
// @Router       /api/reports/390 [get]
func (h *ReportHandler) Modelo390(c *fiber.Ctx) error {
	out, err := h.uc.Modelo390(c.UserContext(), h.year(c))
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}

// Modelo130 godoc
// @Summary      Modelo 130: pago fraccionado de IRPF
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year     query  int  false  "Ejercicio"
// @Param        quarter  query  int  false  "Trimestre 1..4; 0 = anual"
// @Success      200  {object}  dto.Modelo130DTO
// @Router       /api/reports/130 [get]
func (h *ReportHandler) Modelo130(c *fiber.Ctx) error {
	out, err := h.uc.Modelo130(c.UserContext(), h.year(c), c.QueryInt("quarter", 0))
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}

// Modelo111 godoc
// @Summary      Modelo 111: retenciones practicadas a terceros
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year     query  int  false  "Ejercicio"
// @Param        quarter  query  int  false  "Trimestre 1..4; 0 = anual"
// @Success      200  {object}  dto.Modelo111DTO
// @Router       /api/reports/111 [get]
func (h *ReportHandler) Modelo111(c *fiber.Ctx) error {
	out, err := h.uc.Modelo111(c.UserContext(), h.year(c), c.QueryInt("quarter", 0))
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}

// Modelo347 godoc
// @Summary      Modelo 347: operaciones con terceros > 3.005,06 €
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Ejercicio"
// @Success      200   {object}  dto.Modelo347DTO
// @Router       /api/reports/347 [get]
func (h *ReportHandler) Modelo347(c *fiber.Ctx) error {
	out, err := h.uc.Modelo347(c.UserContext(), h.year(c))
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}

// Modelo190 godoc
// @Summary      Modelo 190: retenciones soportadas por pagador
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Ejercicio"
// @Success      200   {object}  dto.Modelo190DTO
// @Router       /api/reports/190 [get]
func (h *ReportHandler) Modelo190(c *fiber.Ctx) error {
	out, err := h.uc.Modelo190(c.UserContext(), h.year(c))
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(out)
}

func (h *ReportHandler) year(c *fiber.Ctx) int {
	return c.QueryInt("year", time.Now().Year())
}
