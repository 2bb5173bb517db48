package api

import (
	"net/http"

	reqdto "serial-inventory/internal/handler/dto/request"
	"serial-inventory/internal/handler/httperr"
	"serial-inventory/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	cmds commands.CatalogCommands
}

func NewCatalogHandler(cmds commands.CatalogCommands) *CatalogHandler {
	return &CatalogHandler{cmds: cmds}
}

// @Summary Sync product
// @Description Upsert a product and its variants into the catalog mirror
// @Tags catalog
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.SyncProductRequest true "Product"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Router /api/catalog/products [put]
func (h *CatalogHandler) SyncProduct(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.SyncProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.SyncProduct(c.Request.Context(), shop, req.ToInput()); err != nil {
		httperr.Abort(c, err, "Catalog sync failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Toggle serial tracking
// @Description Set requireSerial on a product or a variant
// @Tags catalog
// @Accept json
// @Security BearerAuth
// @Param target path string true "product or variant"
// @Param id path string true "Product or variant ID"
// @Param request body reqdto.SetRequireSerialRequest true "Flag"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/catalog/{target}/{id}/require-serial [put]
func (h *CatalogHandler) SetRequireSerial(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.SetRequireSerialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	target := commands.CatalogTarget(c.Param("target"))
	if err := h.cmds.SetRequireSerial(c.Request.Context(), shop, target, c.Param("id"), *req.RequireSerial); err != nil {
		httperr.Abort(c, err, "Update failed")
		return
	}
	c.Status(http.StatusNoContent)
}
