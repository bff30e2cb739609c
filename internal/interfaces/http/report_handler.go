package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/application/reports"
)

// ReportHandler expone el tablero, las cohortes y su exportación.
type ReportHandler struct {
	uc  *reports.UseCase
	now func() time.Time
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc, now: time.Now}
}

// Dashboard godoc
// @Summary      Conteos del tablero (deudores, en espera, contactados, pagados)
// @Tags         reports
// @Produce      json
// @Param        q  query  string  false  "búsqueda libre"
// @Success      200  {object}  dto.DashboardDTO
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cohort GET /api/reports/:kind (pending, debtors, paid, movements), /api/reports/history/:clientId
// y /api/clients/:id/history.
func (h *ReportHandler) Cohort(c *fiber.Ctx) error {
	return h.cohort(c, c.Params("kind", reports.KindHistory))
}

// Movements GET /api/followups?status=...&q=... (más reciente primero).
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	return h.cohort(c, reports.KindMovements)
}

func (h *ReportHandler) cohort(c *fiber.Ctx, kind string) error {
	q, err := h.query(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Cohort(c.Context(), kind, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar una cohorte a CSV o PDF
// @Tags         reports
// @Produce      text/csv
// @Produce      application/pdf
// @Param        kind       path   string  true   "pending | debtors | paid | history | movements"
// @Param        format     query  string  false  "csv (defecto) | pdf"
// @Param        client_id  query  string  false  "requerido para history"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/{kind}/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	q, err := h.query(c)
	if err != nil {
		return writeError(c, err)
	}
	file, err := h.uc.Export(c.Context(), c.Params("kind"), c.Query("format", reports.FormatCSV), q)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(file.Name)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}

// query arma reports.Query desde q, status, client_id, strict, days y since.
// since (YYYY-MM-DD) tiene prioridad sobre days.
func (h *ReportHandler) query(c *fiber.Ctx) (reports.Query, error) {
	q := reports.Query{
		Search:   c.Query("q"),
		Status:   c.Query("status"),
		ClientID: c.Params("clientId", c.Params("id", c.Query("client_id"))),
		Strict:   c.QueryBool("strict", false),
	}
	if s := c.Query("since"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return q, &dto.ValidationError{Fields: map[string]string{"since": "formato YYYY-MM-DD"}}
		}
		q.PaidSince = &t
		return q, nil
	}
	if d := c.Query("days"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 0 {
			return q, &dto.ValidationError{Fields: map[string]string{"days": "entero no negativo"}}
		}
		now := h.now()
		since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -n)
		q.PaidSince = &since
	}
	return q, nil
}
