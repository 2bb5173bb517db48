package api

import (
	"net/http"

	reqdto "serial-inventory/internal/handler/dto/request"
	resdto "serial-inventory/internal/handler/dto/response"
	"serial-inventory/internal/handler/httperr"
	"serial-inventory/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
}

func NewCheckoutHandler(cmds commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds}
}

// @Summary Reserve assigned serials
// @Description Reserve ASSIGNED serials for checkout; all or nothing
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReserveAssignedRequest true "Reserve request"
// @Success 200 {object} resdto.CountResponse
// @Failure 400 {object} httperr.Response
// @Router /api/checkout/reserve [post]
func (h *CheckoutHandler) ReserveAssigned(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.ReserveAssignedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	n, err := h.cmds.ReserveAssigned(c.Request.Context(), shop, req.SerialIDs, req.OrderID)
	if err != nil {
		httperr.Abort(c, err, "Reserve failed")
		return
	}
	c.JSON(http.StatusOK, resdto.CountResponse{Count: n})
}

// @Summary Reserve by serial number
// @Description Reserve one serial picked at the point of sale
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReserveBySerialRequest true "Reserve request"
// @Success 200 {object} resdto.SerialResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/checkout/reserve-serial [post]
func (h *CheckoutHandler) ReserveBySerialNumber(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.ReserveBySerialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	s, err := h.cmds.ReserveBySerialNumber(c.Request.Context(), shop, req.ToInput())
	if err != nil {
		httperr.Abort(c, err, "Reserve failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromSerial(s))
}

// @Summary Mark serial sold
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.MarkSoldRequest true "Sale"
// @Success 200 {object} resdto.SerialResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/checkout/sell [post]
func (h *CheckoutHandler) MarkSold(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.MarkSoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	s, err := h.cmds.MarkSold(c.Request.Context(), shop, req.ToInput())
	if err != nil {
		httperr.Abort(c, err, "Sale failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromSerial(s))
}

// @Summary Bulk mark sold
// @Description Sell several serials for one order; all or nothing
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BulkMarkSoldRequest true "Sale"
// @Success 200 {object} resdto.BulkMarkSoldResponse
// @Failure 400 {object} httperr.Response
// @Router /api/checkout/sell-bulk [post]
func (h *CheckoutHandler) BulkMarkSold(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.BulkMarkSoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	res, err := h.cmds.BulkMarkSold(c.Request.Context(), shop, req.SerialNumbers, req.OrderID)
	if err != nil {
		httperr.Abort(c, err, "Sale failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBulkMarkSold(res))
}

// @Summary Release reservation
// @Description Return a RESERVED serial to its variant
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReleaseReservedRequest true "Release"
// @Success 200 {object} resdto.SerialResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/checkout/release [post]
func (h *CheckoutHandler) ReleaseReserved(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.ReleaseReservedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	s, err := h.cmds.ReleaseReserved(c.Request.Context(), shop, req.SerialNumber, req.OrderID)
	if err != nil {
		httperr.Abort(c, err, "Release failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromSerial(s))
}
