package handler

import (
	"net/http"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/dto"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/service"

	"github.com/gin-gonic/gin"
)

// InventarioHandler exposes the stock ledger: lots, movements, totals and
// per-product history.
type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

func (h *InventarioHandler) CrearLote(c *gin.Context) {
	var req dto.CrearLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearLote(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventarioHandler) ObtenerLote(c *gin.Context) {
	resp, err := h.svc.ObtenerLote(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) ListarLotes(c *gin.Context) {
	resp, err := h.svc.ListarLotes(c.Request.Context(), c.Param("productoId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.RegistrarMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	filter := dto.MovimientoFilter{
		ProductoID: c.Query("producto_id"),
		Tipo:       c.Query("tipo"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 100),
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) Historial(c *gin.Context) {
	resp, err := h.svc.Historial(c.Request.Context(), c.Param("productoId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) TotalStock(c *gin.Context) {
	resp, err := h.svc.TotalStock(c.Request.Context(), c.Param("productoId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
