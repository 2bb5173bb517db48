package api

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	reqdto "serial-inventory/internal/handler/dto/request"
	"serial-inventory/internal/handler/httperr"
	"serial-inventory/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var exportHeader = []string{"Serial Number", "Status", "Product", "Variant", "SKU", "Order ID", "Sold At", "Created At"}

type ExportHandler struct {
	q queries.SerialQueries
}

func NewExportHandler(q queries.SerialQueries) *ExportHandler {
	return &ExportHandler{q: q}
}

// @Summary Export serials
// @Description CSV of the shop's serials joined with catalog titles
// @Tags serials
// @Produce text/csv
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param product_id query string false "Product filter"
// @Param variant_id query string false "Variant filter"
// @Success 200 {string} string "CSV"
// @Failure 400 {object} httperr.Response
// @Router /api/serials/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var q reqdto.ListSerialsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	rows, err := h.q.Export(c.Request.Context(), shop, q.Filters())
	if err != nil {
		httperr.Abort(c, err, "Export failed")
		return
	}

	filename := fmt.Sprintf("serials-%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeader)
	for _, r := range rows {
		_ = w.Write(exportRecord(r))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to write serial export", "shop", shop, "error", err.Error())
	}
}

func exportRecord(r *queries.ExportRow) []string {
	soldAt := ""
	if r.SoldAt != nil {
		soldAt = r.SoldAt.UTC().Format(time.RFC3339)
	}
	return []string{
		r.SerialNumber,
		r.Status,
		r.ProductTitle,
		r.VariantTitle,
		r.SKU,
		r.OrderID,
		soldAt,
		r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
