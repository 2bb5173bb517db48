package api

import (
	"net/http"

	reqdto "serial-inventory/internal/handler/dto/request"
	resdto "serial-inventory/internal/handler/dto/response"
	"serial-inventory/internal/handler/httperr"
	"serial-inventory/internal/handler/middleware"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/usecase/commands"
	"serial-inventory/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errNoShop = errs.New("shop scope missing")

type SerialHandler struct {
	cmds commands.SerialCommands
	q    queries.SerialQueries
}

func NewSerialHandler(cmds commands.SerialCommands, q queries.SerialQueries) *SerialHandler {
	return &SerialHandler{cmds: cmds, q: q}
}

// @Summary List serials
// @Description List the shop's serials, most recent first, with keyset pagination
// @Tags serials
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param product_id query string false "Product filter"
// @Param variant_id query string false "Variant filter"
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} resdto.SerialListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/serials [get]
func (h *SerialHandler) List(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var q reqdto.ListSerialsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	items, next, err := h.q.ListByShop(c.Request.Context(), shop, q.Filters(), q.PageCursor(), q.Limit)
	if err != nil {
		httperr.Abort(c, err, "Failed to list serials")
		return
	}
	c.JSON(http.StatusOK, resdto.FromSerialPage(items, next))
}

// @Summary List unassigned serials
// @Tags serials
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.SerialResponse
// @Router /api/serials/unassigned [get]
func (h *SerialHandler) ListUnassigned(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	items, err := h.q.ListUnassigned(c.Request.Context(), shop)
	if err != nil {
		httperr.Abort(c, err, "Failed to list serials")
		return
	}
	c.JSON(http.StatusOK, resdto.FromSerialViews(items))
}

// @Summary Create serial
// @Description Register one serial number, optionally attached to a variant
// @Tags serials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSerialRequest true "Create serial request"
// @Success 201 {object} resdto.SerialResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/serials [post]
func (h *SerialHandler) Create(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.CreateSerialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	s, err := h.cmds.Create(c.Request.Context(), shop, req.ToInput())
	if err != nil {
		httperr.Abort(c, err, "Create serial failed")
		return
	}
	c.Header("Location", "/api/serials/"+s.ID().String())
	c.JSON(http.StatusCreated, resdto.FromSerial(s))
}

// @Summary Bulk import serials
// @Description Import unassigned serial numbers; duplicates are skipped and malformed numbers reported
// @Tags serials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BulkCreateSerialsRequest true "Serial numbers"
// @Success 200 {object} resdto.BulkCreateResponse
// @Failure 400 {object} httperr.Response
// @Router /api/serials/bulk [post]
func (h *SerialHandler) CreateBulk(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.BulkCreateSerialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	res, err := h.cmds.CreateBulk(c.Request.Context(), shop, req.SerialNumbers)
	if err != nil {
		httperr.Abort(c, err, "Bulk import failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBulkCreate(res))
}

// @Summary Assign serials
// @Description Attach AVAILABLE serials to a variant; all or nothing
// @Tags serials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AssignSerialsRequest true "Assign request"
// @Success 200 {object} resdto.CountResponse
// @Failure 400 {object} httperr.Response
// @Router /api/serials/assign [post]
func (h *SerialHandler) Assign(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.AssignSerialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	n, err := h.cmds.Assign(c.Request.Context(), shop, req.ToInput())
	if err != nil {
		httperr.Abort(c, err, "Assign failed")
		return
	}
	c.JSON(http.StatusOK, resdto.CountResponse{Count: n})
}

// @Summary Release serials
// @Description Detach ASSIGNED serials from their variant; all or nothing
// @Tags serials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SerialIDsRequest true "Serial ids"
// @Success 200 {object} resdto.CountResponse
// @Failure 400 {object} httperr.Response
// @Router /api/serials/release [post]
func (h *SerialHandler) Release(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.SerialIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	n, err := h.cmds.Release(c.Request.Context(), shop, req.SerialIDs)
	if err != nil {
		httperr.Abort(c, err, "Release failed")
		return
	}
	c.JSON(http.StatusOK, resdto.CountResponse{Count: n})
}

// @Summary Rename serial
// @Description Override a serial's number
// @Tags serials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Serial ID"
// @Param request body reqdto.RenameSerialRequest true "New serial number"
// @Success 200 {object} resdto.SerialResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/serials/{id} [patch]
func (h *SerialHandler) Rename(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.RenameSerialRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	s, err := h.cmds.RenameSerial(c.Request.Context(), shop, id, req.SerialNumber)
	if err != nil {
		httperr.Abort(c, err, "Rename failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromSerial(s))
}

// @Summary Delete serial
// @Description Soft-delete a serial; with hard=true the row is removed
// @Tags serials
// @Security BearerAuth
// @Param id path string true "Serial ID"
// @Param hard query bool false "Remove the row"
// @Success 200 {object} resdto.SerialResponse
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/serials/{id} [delete]
func (h *SerialHandler) Delete(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if c.Query("hard") == "true" {
		if err := h.cmds.Delete(c.Request.Context(), shop, id); err != nil {
			httperr.Abort(c, err, "Delete failed")
			return
		}
		c.Status(http.StatusNoContent)
		return
	}
	s, err := h.cmds.SoftDelete(c.Request.Context(), shop, id)
	if err != nil {
		httperr.Abort(c, err, "Delete failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromSerial(s))
}

// @Summary Validate serial
// @Description Check whether a serial number can be used for a product and variant
// @Tags serials
// @Produce json
// @Security BearerAuth
// @Param serial_number query string true "Serial number"
// @Param product_id query string false "Product ID"
// @Param variant_id query string false "Variant ID"
// @Success 200 {object} resdto.ValidationResponse
// @Failure 400 {object} httperr.Response
// @Router /api/serials/validate [get]
func (h *SerialHandler) Validate(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var q reqdto.ValidateSerialQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	res, err := h.q.Validate(c.Request.Context(), shop, q.SerialNumber, q.ProductID, q.VariantID)
	if err != nil {
		httperr.Abort(c, err, "Validation failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromValidation(res))
}

// @Summary List reconciliation tasks
// @Description Order events that need a manual decision
// @Tags serials
// @Produce json
// @Security BearerAuth
// @Param status query string false "open or resolved"
// @Param limit query int false "Max rows (max 200)"
// @Success 200 {array} resdto.ReconciliationTaskResponse
// @Router /api/reconciliation-tasks [get]
func (h *SerialHandler) ListReconciliationTasks(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var q reqdto.ListTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	items, err := h.q.ListReconciliationTasks(c.Request.Context(), shop, q.Status, q.Limit)
	if err != nil {
		httperr.Abort(c, err, "Failed to list tasks")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReconciliationTasks(items))
}

func shopOrAbort(c *gin.Context) (string, bool) {
	shop, ok := middleware.GetShop(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoShop, "Unauthorized", nil)
		return "", false
	}
	return shop, true
}
