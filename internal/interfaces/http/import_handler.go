package http

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/autonomo-pro/internal/application/dto"
	"github.com/tu-usuario/autonomo-pro/internal/application/importer"
)

// ImportHandler recibe ficheros CSV/XLSX y los vuelca al libro registro.
// Cada fila pasa por las mismas comprobaciones que el alta manual.
type ImportHandler struct {
	im *importer.Importer
}

// NewImportHandler construye el handler.
func NewImportHandler(im *importer.Importer) *ImportHandler {
	return &ImportHandler{im: im}
}

// Upload godoc
// @Summary      Importar apuntes desde un fichero CSV o XLSX
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file  true   "Fichero .csv o .xlsx"
// @Param        confirm  query     bool  false  "Aceptar avisos no bloqueantes"
// @Success      200  {object}  importer.Report
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/import [post]
func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "falta el campo file"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo abrir el fichero"})
	}
	defer f.Close()

	confirm := c.QueryBool("confirm", false)

	var report *importer.Report
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		report, err = h.im.ImportCSV(c.UserContext(), f, confirm)
	case ".xlsx":
		report, err = h.im.ImportXLSX(c.UserContext(), f, confirm)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato no soportado, use .csv o .xlsx"})
	}
	if err != nil {
		return statusFromError(c, err)
	}
	return c.JSON(report)
}
