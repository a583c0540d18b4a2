package handler

import (
	"net/http"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/dto"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogoHandler exposes product↔supplier links and the preferred-supplier
// selection.
type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

func (h *CatalogoHandler) Vincular(c *gin.Context) {
	var req dto.VincularProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Vincular(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) SetPreferido(c *gin.Context) {
	resp, err := h.svc.SetPreferido(c.Request.Context(), c.Param("productoId"), c.Param("proveedorId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ListarPorProducto(c *gin.Context) {
	resp, err := h.svc.ListarPorProducto(c.Request.Context(), c.Param("productoId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) Preferido(c *gin.Context) {
	resp, err := h.svc.Preferido(c.Request.Context(), c.Param("productoId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) Desvincular(c *gin.Context) {
	if err := h.svc.Desvincular(c.Request.Context(), c.Param("productoId"), c.Param("proveedorId")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
