package handler

import (
	"net/http"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/dto"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/service"

	"github.com/gin-gonic/gin"
)

type CotizacionesHandler struct {
	svc      service.CotizacionService
	resolver *CallerResolver
}

func NewCotizacionesHandler(svc service.CotizacionService, resolver *CallerResolver) *CotizacionesHandler {
	return &CotizacionesHandler{svc: svc, resolver: resolver}
}

func (h *CotizacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), h.resolver.Resolve(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CotizacionesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), h.resolver.Resolve(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionesHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), h.resolver.Resolve(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionesHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), h.resolver.Resolve(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VincularDetalle attaches a catalog product to a free-text quoted line.
func (h *CotizacionesHandler) VincularDetalle(c *gin.Context) {
	var req struct {
		ProductoID string `json:"producto_id" validate:"required,uuid"`
	}
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.VincularProducto(c.Request.Context(), c.Param("id"), c.Param("detalleId"), req.ProductoID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionesHandler) CambiarEstado(c *gin.Context) {
	var req dto.CambiarEstadoCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), h.resolver.Resolve(c), c.Param("id"), req.Estado)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionesHandler) Convertir(c *gin.Context) {
	resp, err := h.svc.ConvertirAOrden(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
