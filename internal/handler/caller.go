package handler

import (
	"context"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/infra"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/middleware"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CallerResolver turns verified JWT claims into the typed service.Caller.
// Supplier tokens normally carry their proveedor_id; older tokens don't, so
// the resolver falls back to the auth service behind a circuit breaker.
// When neither source yields a supplier id the caller stays unbound and
// supplier-scoped reads return nothing (fail closed).
type CallerResolver struct {
	auth *infra.AuthClient
	cb   *infra.CircuitBreaker
}

func NewCallerResolver(auth *infra.AuthClient, cb *infra.CircuitBreaker) *CallerResolver {
	return &CallerResolver{auth: auth, cb: cb}
}

func (r *CallerResolver) Resolve(c *gin.Context) service.Caller {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return service.Caller{}
	}
	caller := service.Caller{Rol: model.Rol(claims.Rol)}
	if caller.Rol != model.RolProveedor {
		return caller
	}

	if claims.ProveedorID != nil {
		if id, err := uuid.Parse(*claims.ProveedorID); err == nil {
			caller.ProveedorID = &id
			return caller
		}
	}

	if r.auth == nil || claims.Email == "" {
		return caller
	}
	caller.ProveedorID = r.lookupProveedor(c.Request.Context(), claims.Email)
	return caller
}

func (r *CallerResolver) lookupProveedor(ctx context.Context, email string) *uuid.UUID {
	var user *infra.AuthUser
	err := r.cb.Execute(func() error {
		u, err := r.auth.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("caller: no se pudo resolver el proveedor del token")
		return nil
	}
	if user.ProveedorID == nil {
		return nil
	}
	id, err := uuid.Parse(*user.ProveedorID)
	if err != nil {
		return nil
	}
	return &id
}
