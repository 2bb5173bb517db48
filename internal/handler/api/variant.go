package api

import (
	"context"
	"net/http"

	resdto "serial-inventory/internal/handler/dto/response"
	"serial-inventory/internal/handler/httperr"
	"serial-inventory/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type VariantHandler struct {
	q queries.SerialQueries
}

func NewVariantHandler(q queries.SerialQueries) *VariantHandler {
	return &VariantHandler{q: q}
}

// @Summary Serials a checkout can pick
// @Description The variant's ASSIGNED serials plus the unassigned pool, by serial number
// @Tags variants
// @Produce json
// @Security BearerAuth
// @Param variantId path string true "Variant ID"
// @Success 200 {array} resdto.SerialResponse
// @Router /api/variants/{variantId}/serials/available [get]
func (h *VariantHandler) Available(c *gin.Context) {
	h.list(c, h.q.ListAvailableForVariant)
}

// @Summary Serials assigned to a variant
// @Tags variants
// @Produce json
// @Security BearerAuth
// @Param variantId path string true "Variant ID"
// @Success 200 {array} resdto.SerialResponse
// @Router /api/variants/{variantId}/serials/assigned [get]
func (h *VariantHandler) Assigned(c *gin.Context) {
	h.list(c, h.q.ListAssignedForVariant)
}

// @Summary Every serial attached to a variant
// @Tags variants
// @Produce json
// @Security BearerAuth
// @Param variantId path string true "Variant ID"
// @Success 200 {array} resdto.SerialResponse
// @Router /api/variants/{variantId}/serials [get]
func (h *VariantHandler) All(c *gin.Context) {
	h.list(c, h.q.ListAllForVariant)
}

// @Summary Variant serial capacity
// @Description Occupied serials against the mirrored inventory quantity
// @Tags variants
// @Produce json
// @Security BearerAuth
// @Param variantId path string true "Variant ID"
// @Success 200 {object} queries.VariantCapacity
// @Router /api/variants/{variantId}/capacity [get]
func (h *VariantHandler) Capacity(c *gin.Context) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	res, err := h.q.VariantCapacity(c.Request.Context(), shop, c.Param("variantId"))
	if err != nil {
		httperr.Abort(c, err, "Failed to load capacity")
		return
	}
	c.JSON(http.StatusOK, res)
}

type variantLister func(ctx context.Context, shop, variantID string) ([]*queries.SerialView, error)

func (h *VariantHandler) list(c *gin.Context, fn variantLister) {
	shop, ok := shopOrAbort(c)
	if !ok {
		return
	}
	items, err := fn(c.Request.Context(), shop, c.Param("variantId"))
	if err != nil {
		httperr.Abort(c, err, "Failed to list serials")
		return
	}
	c.JSON(http.StatusOK, resdto.FromSerialViews(items))
}
