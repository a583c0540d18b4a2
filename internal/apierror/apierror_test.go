package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{NotFound("lote %s no encontrado", "x"), http.StatusNotFound},
		{Conflict("duplicado"), http.StatusConflict},
		{Forbidden("rol insuficiente"), http.StatusForbidden},
		{InvalidState("transición ilegal"), http.StatusBadRequest},
		{InsufficientStock("stock insuficiente"), http.StatusBadRequest},
		{Validation("campo inválido"), http.StatusUnprocessableEntity},
		{errors.New("panic en el driver"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestHTTPStatusErrorEnvuelto(t *testing.T) {
	err := fmt.Errorf("registrando movimiento: %w", InsufficientStock("disponible 70, solicitado 80"))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestMatchPorCodigo(t *testing.T) {
	err := NotFound("orden %s no encontrada", "abc")
	assert.True(t, errors.Is(err, &Error{Code: CodeNotFound}))
	assert.False(t, errors.Is(err, &Error{Code: CodeConflict}))
}
