package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/auditpro-api/internal/application/dto"
)

// AuditHandler ciclo de vida de una toma física: carga, escaneo, cierre e informe.
type AuditHandler struct {
	uc AuditService
}

// NewAuditHandler construye el handler de auditorías.
func NewAuditHandler(uc AuditService) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// Create godoc
// @Summary      Iniciar auditoría cargando el inventario teórico
// @Tags         audits
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        store_name    formData  string  true   "tienda"
// @Param        observations  formData  string  false  "observaciones"
// @Param        file          formData  file    true   "Excel con columnas SKU, Descripcion, Cantidad"
// @Success      201  {object}  dto.AuditResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audits [post]
func (h *AuditHandler) Create(c *fiber.Ctx) error {
	in := dto.CreateAuditRequest{
		StoreName:    c.FormValue("store_name"),
		Observations: c.FormValue("observations"),
	}
	if strings.TrimSpace(in.StoreName) == "" {
		return validation(c, "store_name es requerido")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return validation(c, "file es requerido (Excel del inventario teórico)")
	}
	f, err := fh.Open()
	if err != nil {
		return invalidBody(c)
	}
	defer f.Close()

	out, err := h.uc.CreateSession(c.Context(), GetUsername(c), in, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener auditoría y progreso
// @Tags         audits
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.AuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id} [get]
func (h *AuditHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Items godoc
// @Summary      Líneas de la auditoría (escaneadas primero)
// @Tags         audits
// @Security     BearerAuth
// @Produce      json
// @Param        id  path   string  true   "ID de la auditoría"
// @Param        q   query  string  false  "filtro por SKU o descripción"
// @Success      200  {object}  dto.ItemListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/items [get]
func (h *AuditHandler) Items(c *fiber.Ctx) error {
	out, err := h.uc.ListItems(c.Context(), c.Params("id"), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Scan godoc
// @Summary      Registrar una lectura del escáner
// @Description  Formatos: CODIGO, "CODIGO CANT", CANT*CODIGO, CODIGO*CANT. Un código desconocido responde 200 con found=false.
// @Tags         audits
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID de la auditoría"
// @Param        body  body  dto.ScanRequest  true  "lectura cruda"
// @Success      200   {object}  dto.ScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/scan [post]
func (h *AuditHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if strings.TrimSpace(in.Input) == "" {
		return validation(c, "input es requerido")
	}
	out, err := h.uc.Scan(c.Context(), c.Params("id"), in.Input)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Finish godoc
// @Summary      Finalizar auditoría
// @Tags         audits
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true   "ID de la auditoría"
// @Param        body  body  dto.FinishAuditRequest  false  "observaciones finales"
// @Success      200   {object}  dto.AuditResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/finish [post]
func (h *AuditHandler) Finish(c *fiber.Ctx) error {
	var in dto.FinishAuditRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.uc.Finish(c.Context(), c.Params("id"), in.Observations)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar una auditoría no finalizada
// @Tags         audits
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/audits/{id} [delete]
func (h *AuditHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Report godoc
// @Summary      Informe de discrepancias
// @Tags         audits
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.ReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/report [get]
func (h *AuditHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.Report(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Guardar en historial y descargar el PDF
// @Tags         audits
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la auditoría"
// @Success      200  {file}    binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/export [post]
func (h *AuditHandler) Export(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Export(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, contentDisposition(filename))
	return c.Send(pdf)
}

// contentDisposition arma el adjunto con un filename ASCII de respaldo y filename* (RFC 5987) en UTF-8.
func contentDisposition(filename string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, filename)

	var enc strings.Builder
	for _, b := range []byte(filename) {
		if isAttrChar(b) {
			enc.WriteByte(b)
			continue
		}
		fmt.Fprintf(&enc, "%%%02X", b)
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, enc.String())
}

func isAttrChar(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", b) >= 0
}

// History godoc
// @Summary      Últimas auditorías guardadas
// @Tags         history
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  dto.HistoryEntryDTO
// @Router       /api/history [get]
func (h *AuditHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
