package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Henry-56/ferreteria/internal/dto"
	"github.com/Henry-56/ferreteria/internal/model"
	"github.com/Henry-56/ferreteria/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovimientoParams describes one stock-changing operation.
// For entrada/salida, Cantidad is the magnitude of the change; for ajuste it
// is the target stock value.
type MovimientoParams struct {
	ProductoID   uuid.UUID
	Tipo         string
	Cantidad     int
	UsuarioID    uuid.UUID
	Referencia   string
	ReferenciaID *uuid.UUID
	Motivo       string
}

// InventarioService is the only component allowed to mutate productos.stock.
// Every change is applied under the product's row lock and ledgered as one
// mov_inventarios row inside the same transaction.
type InventarioService interface {
	// RegistrarMovimientoTx applies one movement inside a caller-provided
	// transaction. The venta/compra workflows call this once per line.
	RegistrarMovimientoTx(ctx context.Context, tx *gorm.DB, p MovimientoParams) (*model.MovInventario, error)
	// RegistrarMovimiento is the self-transacting variant.
	RegistrarMovimiento(ctx context.Context, p MovimientoParams) (*model.MovInventario, error)
	// AjustarStock sets the stock of one product to nuevoStock ("recount").
	AjustarStock(ctx context.Context, productoID uuid.UUID, nuevoStock int, usuarioID uuid.UUID, motivo string) (*model.MovInventario, error)

	HistorialMovimientos(ctx context.Context, filter repository.MovInventarioFilter) (*dto.MovimientoListResponse, error)
	ProductosBajoStock(ctx context.Context) ([]dto.ProductoStockResponse, error)
	ProductosAgotados(ctx context.Context) ([]dto.ProductoStockResponse, error)
	ResumenInventario(ctx context.Context) (*dto.ResumenInventarioResponse, error)
}

type inventarioService struct {
	productoRepo repository.ProductoRepository
	movRepo      repository.MovInventarioRepository
}

func NewInventarioService(productoRepo repository.ProductoRepository, movRepo repository.MovInventarioRepository) InventarioService {
	return &inventarioService{productoRepo: productoRepo, movRepo: movRepo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *inventarioService) RegistrarMovimientoTx(ctx context.Context, tx *gorm.DB, p MovimientoParams) (*model.MovInventario, error) {
	producto, err := s.productoRepo.FindByIDForUpdateTx(tx, p.ProductoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductoNoEncontradoError{ProductoID: p.ProductoID}
		}
		return nil, clasificarErrorDB(err, "")
	}

	stockAnterior := producto.Stock
	stockNuevo := stockAnterior
	cantidad := p.Cantidad

	switch p.Tipo {
	case model.MovimientoEntrada:
		if p.Cantidad < 0 {
			return nil, fmt.Errorf("cantidad negativa en movimiento entrada: %d", p.Cantidad)
		}
		stockNuevo = stockAnterior + p.Cantidad
	case model.MovimientoSalida:
		if p.Cantidad < 0 {
			return nil, fmt.Errorf("cantidad negativa en movimiento salida: %d", p.Cantidad)
		}
		if p.Cantidad > stockAnterior {
			return nil, &StockInsuficienteError{
				ProductoID: producto.ID,
				Nombre:     producto.Nombre,
				Solicitado: p.Cantidad,
				Disponible: stockAnterior,
			}
		}
		stockNuevo = stockAnterior - p.Cantidad
	case model.MovimientoAjuste:
		// Cantidad carries the target; the stored magnitude is the delta.
		if p.Cantidad < 0 {
			return nil, &AjusteInvalidoError{Objetivo: p.Cantidad}
		}
		stockNuevo = p.Cantidad
		cantidad = stockNuevo - stockAnterior
		if cantidad < 0 {
			cantidad = -cantidad
		}
	default:
		return nil, errors.New("tipo de movimiento desconocido: " + p.Tipo)
	}

	if err := s.productoRepo.UpdateStockTx(tx, producto.ID, stockNuevo); err != nil {
		return nil, clasificarErrorDB(err, "")
	}

	mov := &model.MovInventario{
		ProductoID:     producto.ID,
		UsuarioID:      p.UsuarioID,
		TipoMovimiento: p.Tipo,
		Cantidad:       cantidad,
		StockAnterior:  stockAnterior,
		StockNuevo:     stockNuevo,
		Referencia:     p.Referencia,
		ReferenciaID:   p.ReferenciaID,
		Motivo:         p.Motivo,
		Fecha:          time.Now(),
	}
	if err := s.movRepo.CreateTx(tx, mov); err != nil {
		return nil, clasificarErrorDB(err, "")
	}
	return mov, nil
}

func (s *inventarioService) RegistrarMovimiento(ctx context.Context, p MovimientoParams) (*model.MovInventario, error) {
	var mov *model.MovInventario
	err := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		var txErr error
		mov, txErr = s.RegistrarMovimientoTx(ctx, tx, p)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

func (s *inventarioService) AjustarStock(ctx context.Context, productoID uuid.UUID, nuevoStock int, usuarioID uuid.UUID, motivo string) (*model.MovInventario, error) {
	if nuevoStock < 0 {
		return nil, &AjusteInvalidoError{Objetivo: nuevoStock}
	}
	return s.RegistrarMovimiento(ctx, MovimientoParams{
		ProductoID: productoID,
		Tipo:       model.MovimientoAjuste,
		Cantidad:   nuevoStock,
		UsuarioID:  usuarioID,
		Referencia: model.ReferenciaAjusteManual,
		Motivo:     motivo,
	})
}

func (s *inventarioService) HistorialMovimientos(ctx context.Context, filter repository.MovInventarioFilter) (*dto.MovimientoListResponse, error) {
	movimientos, total, err := s.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		items = append(items, movimientoToResponse(&m))
	}
	return &dto.MovimientoListResponse{Data: items, Total: total}, nil
}

func (s *inventarioService) ProductosBajoStock(ctx context.Context) ([]dto.ProductoStockResponse, error) {
	productos, err := s.productoRepo.BajoStock(ctx)
	if err != nil {
		return nil, err
	}
	return productosToStockResponse(productos), nil
}

func (s *inventarioService) ProductosAgotados(ctx context.Context) ([]dto.ProductoStockResponse, error) {
	productos, err := s.productoRepo.Agotados(ctx)
	if err != nil {
		return nil, err
	}
	return productosToStockResponse(productos), nil
}

func (s *inventarioService) ResumenInventario(ctx context.Context) (*dto.ResumenInventarioResponse, error) {
	valor, totalProductos, err := s.productoRepo.ValorInventario(ctx)
	if err != nil {
		return nil, err
	}
	bajoStock, err := s.productoRepo.BajoStock(ctx)
	if err != nil {
		return nil, err
	}
	agotados, err := s.productoRepo.Agotados(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenInventarioResponse{
		TotalProductos:     totalProductos,
		ProductosBajoStock: len(bajoStock),
		ProductosAgotados:  len(agotados),
		ValorTotal:         valor,
	}, nil
}

func movimientoToResponse(m *model.MovInventario) dto.MovimientoResponse {
	resp := dto.MovimientoResponse{
		ID:             m.ID.String(),
		ProductoID:     m.ProductoID.String(),
		UsuarioID:      m.UsuarioID.String(),
		TipoMovimiento: m.TipoMovimiento,
		Cantidad:       m.Cantidad,
		StockAnterior:  m.StockAnterior,
		StockNuevo:     m.StockNuevo,
		Referencia:     m.Referencia,
		Motivo:         m.Motivo,
		Fecha:          m.Fecha.Format(time.RFC3339),
	}
	if m.ReferenciaID != nil {
		refID := m.ReferenciaID.String()
		resp.ReferenciaID = &refID
	}
	if m.Producto != nil {
		resp.Producto = m.Producto.Nombre
	}
	return resp
}

func productosToStockResponse(productos []model.Producto) []dto.ProductoStockResponse {
	items := make([]dto.ProductoStockResponse, 0, len(productos))
	for _, p := range productos {
		item := dto.ProductoStockResponse{
			ID:          p.ID.String(),
			Nombre:      p.Nombre,
			Stock:       p.Stock,
			StockMinimo: p.StockMinimo,
		}
		if p.Rubro != nil {
			item.Rubro = p.Rubro.Nombre
		}
		items = append(items, item)
	}
	return items
}
