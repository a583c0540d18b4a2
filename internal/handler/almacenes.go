package handler

import (
	"net/http"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/dto"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/service"

	"github.com/gin-gonic/gin"
)

type AlmacenesHandler struct{ svc service.AlmacenService }

func NewAlmacenesHandler(svc service.AlmacenService) *AlmacenesHandler {
	return &AlmacenesHandler{svc: svc}
}

func (h *AlmacenesHandler) Crear(c *gin.Context) {
	var req dto.CrearAlmacenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AlmacenesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlmacenesHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlmacenesHandler) Actualizar(c *gin.Context) {
	var req dto.CrearAlmacenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlmacenesHandler) Desactivar(c *gin.Context) {
	if err := h.svc.Desactivar(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
