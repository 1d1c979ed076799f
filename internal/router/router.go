package router

import (
	"time"

	"github.com/Henry-56/ferreteria/internal/auth"
	"github.com/Henry-56/ferreteria/internal/config"
	"github.com/Henry-56/ferreteria/internal/handler"
	"github.com/Henry-56/ferreteria/internal/middleware"
	"github.com/Henry-56/ferreteria/internal/repository"
	"github.com/Henry-56/ferreteria/internal/service"
	"github.com/Henry-56/ferreteria/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	movRepo := repository.NewMovInventarioRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	rubroRepo := repository.NewRubroRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	inventarioSvc := service.NewInventarioService(productoRepo, movRepo)
	productoSvc := service.NewProductoService(productoRepo, inventarioSvc)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, inventarioSvc, dispatcher, cfg.TasaImpuesto)
	compraSvc := service.NewCompraService(compraRepo, productoRepo, inventarioSvc)
	clienteSvc := service.NewClienteService(clienteRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	rubroSvc := service.NewRubroService(rubroRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	rubrosH := handler.NewRubrosHandler(rubroSvc)

	authz := auth.NewRolAuthorizer()

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	authGroup := r.Group("/v1/auth")
	{
		authGroup.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		authGroup.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		puede := func(p auth.Permission) gin.HandlerFunc {
			return middleware.RequirePermission(authz, p)
		}

		// Productos
		v1.GET("/productos", puede(auth.PermProductosVer), productosH.Listar)
		v1.GET("/productos/:id", puede(auth.PermProductosVer), productosH.Obtener)
		v1.GET("/productos/barcode/:codigo", puede(auth.PermProductosVer), productosH.BuscarPorBarcode)
		v1.POST("/productos", puede(auth.PermProductosCrear), productosH.Crear)
		v1.PUT("/productos/:id", puede(auth.PermProductosEditar), productosH.Actualizar)
		v1.DELETE("/productos/:id", puede(auth.PermProductosEliminar), productosH.Eliminar)
		v1.PATCH("/productos/:id/reactivar", puede(auth.PermProductosEditar), productosH.Reactivar)
		v1.POST("/productos/:id/ajustar-stock", puede(auth.PermProductosAjustarStock), inventarioH.AjustarStock)

		// Ventas
		v1.POST("/ventas", puede(auth.PermVentasCrear), ventasH.Crear)
		v1.GET("/ventas", puede(auth.PermVentasVer), ventasH.Listar)
		v1.GET("/ventas/resumen", puede(auth.PermVentasVer), ventasH.ResumenPeriodo)
		v1.GET("/ventas/:id", puede(auth.PermVentasVer), ventasH.Obtener)
		v1.DELETE("/ventas/:id", puede(auth.PermVentasAnular), ventasH.Anular)

		// Compras
		v1.POST("/compras", puede(auth.PermComprasCrear), comprasH.Crear)
		v1.GET("/compras", puede(auth.PermComprasVer), comprasH.Listar)
		v1.GET("/compras/:id", puede(auth.PermComprasVer), comprasH.Obtener)

		// Inventario
		inv := v1.Group("/inventario", puede(auth.PermInventarioVer))
		{
			inv.GET("/movimientos", inventarioH.Movimientos)
			inv.GET("/bajo-stock", inventarioH.BajoStock)
			inv.GET("/agotados", inventarioH.Agotados)
			inv.GET("/resumen", inventarioH.Resumen)
		}

		// Clientes
		v1.GET("/clientes", puede(auth.PermClientesVer), clientesH.Listar)
		v1.GET("/clientes/:id", puede(auth.PermClientesVer), clientesH.Obtener)
		v1.POST("/clientes", puede(auth.PermClientesCrear), clientesH.Crear)
		v1.PUT("/clientes/:id", puede(auth.PermClientesEditar), clientesH.Actualizar)
		v1.DELETE("/clientes/:id", puede(auth.PermClientesEliminar), clientesH.Eliminar)

		// Proveedores
		v1.GET("/proveedores", puede(auth.PermProveedoresVer), proveedoresH.Listar)
		v1.GET("/proveedores/:id", puede(auth.PermProveedoresVer), proveedoresH.Obtener)
		v1.POST("/proveedores", puede(auth.PermProveedoresCrear), proveedoresH.Crear)
		v1.PUT("/proveedores/:id", puede(auth.PermProveedoresEditar), proveedoresH.Actualizar)
		v1.DELETE("/proveedores/:id", puede(auth.PermProveedoresEliminar), proveedoresH.Eliminar)

		// Rubros
		v1.GET("/rubros", puede(auth.PermProductosVer), rubrosH.Listar)
		v1.POST("/rubros", puede(auth.PermProductosCrear), rubrosH.Crear)
		v1.PUT("/rubros/:id", puede(auth.PermProductosEditar), rubrosH.Actualizar)
		v1.DELETE("/rubros/:id", puede(auth.PermProductosEliminar), rubrosH.Eliminar)

		// Usuarios
		usuarios := v1.Group("/usuarios", puede(auth.PermUsuariosAdministrar))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
