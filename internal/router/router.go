package router

import (
	"time"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/config"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/handler"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/infra"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/middleware"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/repository"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/service"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(600, time.Minute)) // 600 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	authClient := infra.NewAuthClient(cfg.AuthServiceURL)
	authCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	almacenRepo := repository.NewAlmacenRepository(db)
	loteRepo := repository.NewLoteRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)
	linkRepo := repository.NewProductoProveedorRepository(db)
	cotizacionRepo := repository.NewCotizacionRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	productoSvc := service.NewProductoService(productoRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	almacenSvc := service.NewAlmacenService(almacenRepo)
	inventarioSvc := service.NewInventarioService(loteRepo, movimientoRepo, productoRepo, almacenRepo, dispatcher)
	catalogoSvc := service.NewCatalogoService(linkRepo, productoRepo, proveedorRepo)
	cotizacionSvc := service.NewCotizacionService(cotizacionRepo, ordenRepo, productoRepo, proveedorRepo)
	// Completing an order hands each line to the inventory service, which
	// decides lot placement inside the same transaction.
	ordenSvc := service.NewOrdenService(ordenRepo, proveedorRepo, productoRepo, inventarioSvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	resolver := handler.NewCallerResolver(authClient, authCB)
	productosH := handler.NewProductosHandler(productoSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	almacenesH := handler.NewAlmacenesHandler(almacenSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	cotizacionesH := handler.NewCotizacionesHandler(cotizacionSvc, resolver)
	ordenesH := handler.NewOrdenesHandler(ordenSvc, resolver)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: administrador, compras (staff) y proveedor — declared per-group
		staff := middleware.RequireRole("administrador", "compras")
		todos := middleware.RequireRole("administrador", "compras", "proveedor")

		prods := v1.Group("/productos", staff)
		{
			prods.POST("", productosH.Crear)
			prods.GET("", productosH.Listar)
			prods.GET("/:id", productosH.Obtener)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
		}

		prov := v1.Group("/proveedores", staff)
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.Obtener)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Desactivar)
		}

		alm := v1.Group("/almacenes", staff)
		{
			alm.POST("", almacenesH.Crear)
			alm.GET("", almacenesH.Listar)
			alm.GET("/:id", almacenesH.Obtener)
			alm.PUT("/:id", almacenesH.Actualizar)
			alm.DELETE("/:id", almacenesH.Desactivar)
		}

		inv := v1.Group("/inventario", staff)
		{
			inv.POST("/lotes", inventarioH.CrearLote)
			inv.GET("/lotes/:id", inventarioH.ObtenerLote)
			inv.GET("/productos/:productoId/lotes", inventarioH.ListarLotes)
			inv.POST("/movimientos", inventarioH.RegistrarMovimiento)
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
			inv.GET("/productos/:productoId/historial", inventarioH.Historial)
			inv.GET("/productos/:productoId/stock", inventarioH.TotalStock)
		}

		cat := v1.Group("/catalogo", staff)
		{
			cat.POST("/vinculos", catalogoH.Vincular)
			cat.PUT("/productos/:productoId/preferido/:proveedorId", catalogoH.SetPreferido)
			cat.GET("/productos/:productoId/proveedores", catalogoH.ListarPorProducto)
			cat.GET("/productos/:productoId/preferido", catalogoH.Preferido)
			cat.DELETE("/productos/:productoId/proveedores/:proveedorId", catalogoH.Desvincular)
		}

		// Cotizaciones — proveedores can create/read their own and respond;
		// the service layer enforces ownership and draft visibility.
		cot := v1.Group("/cotizaciones")
		{
			cot.POST("", todos, cotizacionesH.Crear)
			cot.GET("", todos, cotizacionesH.Listar)
			cot.GET("/:id", todos, cotizacionesH.Obtener)
			cot.PUT("/:id", staff, cotizacionesH.Actualizar)
			cot.PATCH("/:id/estado", todos, cotizacionesH.CambiarEstado)
			cot.PATCH("/:id/detalles/:detalleId/producto", staff, cotizacionesH.VincularDetalle)
			cot.POST("/:id/convertir", staff, cotizacionesH.Convertir)
		}

		// Órdenes de compra — proveedores may list/view their own and
		// confirm or reject PENDIENTE orders; deletion is admin-only.
		ord := v1.Group("/ordenes")
		{
			ord.POST("", staff, ordenesH.Crear)
			ord.GET("", todos, ordenesH.Listar)
			ord.GET("/:id", todos, ordenesH.Obtener)
			ord.PUT("/:id", staff, ordenesH.Actualizar)
			ord.PATCH("/:id/estado", todos, ordenesH.CambiarEstado)
			ord.DELETE("/:id", middleware.RequireRole("administrador"), ordenesH.Eliminar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
