package service

import (
	"context"
	"sort"
	"strings"

	"github.com/Henry-56/ferreteria/internal/dto"
	"github.com/Henry-56/ferreteria/internal/model"
	"github.com/Henry-56/ferreteria/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so runTx executes the
// transaction body directly, letting the services run without Postgres.

// ── ProductoRepository ───────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

func (r *stubProductoRepo) agregar(nombre string, stock int, precioVenta, costoPromedio decimal.Decimal) *model.Producto {
	p := &model.Producto{
		ID:            uuid.New(),
		Nombre:        nombre,
		RubroID:       uuid.New(),
		PrecioVenta:   precioVenta,
		CostoPromedio: costoPromedio,
		Stock:         stock,
		StockMinimo:   5,
		Unidad:        "unidad",
		Activo:        true,
	}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	return r.CreateTx(nil, p)
}

func (r *stubProductoRepo) CreateTx(_ *gorm.DB, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoBarras != nil && *p.CodigoBarras == barcode && p.Activo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if p.Activo {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	if _, ok := r.productos[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = true
	return nil
}

func (r *stubProductoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, stock int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock = stock
	return nil
}

func (r *stubProductoRepo) UpdateCostosTx(_ *gorm.DB, id uuid.UUID, precioCompra, costoPromedio decimal.Decimal) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.PrecioCompra = precioCompra
	p.CostoPromedio = costoPromedio
	return nil
}

func (r *stubProductoRepo) BajoStock(_ context.Context) ([]model.Producto, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.Stock <= p.StockMinimo {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProductoRepo) Agotados(_ context.Context) ([]model.Producto, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.Stock == 0 {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProductoRepo) ValorInventario(_ context.Context) (decimal.Decimal, int64, error) {
	valor := decimal.Zero
	var total int64
	for _, p := range r.productos {
		if !p.Activo {
			continue
		}
		valor = valor.Add(decimal.NewFromInt(int64(p.Stock)).Mul(p.CostoUnitario()))
		total++
	}
	return valor, total, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

// ── MovInventarioRepository ──────────────────────────────────────────────────

type stubMovRepo struct {
	movimientos []model.MovInventario
}

func newStubMovRepo() *stubMovRepo { return &stubMovRepo{} }

var _ repository.MovInventarioRepository = (*stubMovRepo)(nil)

func (r *stubMovRepo) CreateTx(_ *gorm.DB, m *model.MovInventario) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovRepo) List(_ context.Context, filter repository.MovInventarioFilter) ([]model.MovInventario, int64, error) {
	var result []model.MovInventario
	for _, m := range r.movimientos {
		if filter.ProductoID != nil && m.ProductoID != *filter.ProductoID {
			continue
		}
		if filter.TipoMovimiento != "" && m.TipoMovimiento != filter.TipoMovimiento {
			continue
		}
		if filter.Referencia != "" && m.Referencia != filter.Referencia {
			continue
		}
		result = append(result, m)
	}
	return result, int64(len(result)), nil
}

func (r *stubMovRepo) UltimoPorProducto(_ context.Context, productoID uuid.UUID) (*model.MovInventario, error) {
	for i := len(r.movimientos) - 1; i >= 0; i-- {
		if r.movimientos[i].ProductoID == productoID {
			m := r.movimientos[i]
			return &m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// porReferencia filters the ledger by reference kind.
func (r *stubMovRepo) porReferencia(ref string) []model.MovInventario {
	var result []model.MovInventario
	for _, m := range r.movimientos {
		if m.Referencia == ref {
			result = append(result, m)
		}
	}
	return result
}

// ── VentaRepository ──────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range v.Detalles {
		if v.Detalles[i].ID == uuid.Nil {
			v.Detalles[i].ID = uuid.New()
		}
		v.Detalles[i].VentaID = v.ID
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) UpdateEstadoNotasTx(_ *gorm.DB, id uuid.UUID, estado string, notas *string) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = estado
	v.Notas = notas
	return nil
}

func (r *stubVentaRepo) BloquearNumeracionTx(_ *gorm.DB, _ string) error { return nil }

func (r *stubVentaRepo) UltimoNumeroComprobanteTx(_ *gorm.DB, tipoComprobante string) (string, error) {
	var numeros []string
	for _, v := range r.ventas {
		if v.TipoComprobante == tipoComprobante {
			numeros = append(numeros, v.NumeroComprobante)
		}
	}
	if len(numeros) == 0 {
		return "", nil
	}
	sort.Strings(numeros)
	return numeros[len(numeros)-1], nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var result []model.Venta
	for _, v := range r.ventas {
		if filter.Estado != "" && filter.Estado != "all" && v.Estado != filter.Estado {
			continue
		}
		result = append(result, *v)
	}
	return result, int64(len(result)), nil
}

func (r *stubVentaRepo) TotalPorPeriodo(_ context.Context, _, _ string) (decimal.Decimal, int64, error) {
	total := decimal.Zero
	var cantidad int64
	for _, v := range r.ventas {
		if v.Estado != model.EstadoCompletada {
			continue
		}
		total = total.Add(v.Total)
		cantidad++
	}
	return total, cantidad, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

// ── CompraRepository ─────────────────────────────────────────────────────────

type stubCompraRepo struct {
	compras map[uuid.UUID]*model.Compra
}

func newStubCompraRepo() *stubCompraRepo {
	return &stubCompraRepo{compras: make(map[uuid.UUID]*model.Compra)}
}

var _ repository.CompraRepository = (*stubCompraRepo)(nil)

func (r *stubCompraRepo) CreateTx(_ *gorm.DB, c *model.Compra) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Detalles {
		c.Detalles[i].CompraID = c.ID
	}
	r.compras[c.ID] = c
	return nil
}

func (r *stubCompraRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Compra, error) {
	c, ok := r.compras[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCompraRepo) List(_ context.Context, _ dto.CompraFilter) ([]model.Compra, int64, error) {
	var result []model.Compra
	for _, c := range r.compras {
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

// ── UsuarioRepository ────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, existente := range r.usuarios {
		if existente.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var result []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(a, b int) bool {
		return strings.Compare(result[a].Username, result[b].Username) < 0
	})
	return result, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var result []model.Usuario
	for _, u := range r.usuarios {
		result = append(result, *u)
	}
	sort.Slice(result, func(a, b int) bool {
		return strings.Compare(result[a].Username, result[b].Username) < 0
	})
	return result, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	if _, ok := r.usuarios[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = true
	return nil
}
