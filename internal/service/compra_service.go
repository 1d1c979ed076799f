package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Henry-56/ferreteria/internal/dto"
	"github.com/Henry-56/ferreteria/internal/model"
	"github.com/Henry-56/ferreteria/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompraService registers stock intake from proveedores. Every purchase line
// produces an entrada movement and refreshes the product's purchase price and
// weighted average cost, all inside one transaction.
type CompraService interface {
	CrearCompra(ctx context.Context, req dto.CrearCompraRequest, usuarioID uuid.UUID) (*dto.CompraResponse, error)
	ObtenerCompra(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error)
	ListCompras(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error)
}

type compraService struct {
	compraRepo    repository.CompraRepository
	productoRepo  repository.ProductoRepository
	inventarioSvc InventarioService
}

func NewCompraService(
	compraRepo repository.CompraRepository,
	productoRepo repository.ProductoRepository,
	inventarioSvc InventarioService,
) CompraService {
	return &compraService{
		compraRepo:    compraRepo,
		productoRepo:  productoRepo,
		inventarioSvc: inventarioSvc,
	}
}

func (s *compraService) CrearCompra(ctx context.Context, req dto.CrearCompraRequest, usuarioID uuid.UUID) (*dto.CompraResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("proveedor_id invalido: %w", err)
	}

	detalles := make([]model.DetalleCompra, 0, len(req.Detalles))
	subtotal := decimal.Zero
	for _, linea := range req.Detalles {
		productoID, err := uuid.Parse(linea.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id invalido: %w", err)
		}
		if linea.PrecioUnitario.IsNegative() {
			return nil, fmt.Errorf("precio_unitario invalido para producto %s", linea.ProductoID)
		}
		lineaSubtotal := linea.PrecioUnitario.Mul(decimal.NewFromInt(int64(linea.Cantidad))).Round(2)
		detalles = append(detalles, model.DetalleCompra{
			ProductoID:     productoID,
			Cantidad:       linea.Cantidad,
			PrecioUnitario: linea.PrecioUnitario.Round(2),
			Subtotal:       lineaSubtotal,
		})
		subtotal = subtotal.Add(lineaSubtotal)
	}

	// Same canonical lock order as the sale workflow.
	sort.Slice(detalles, func(a, b int) bool {
		return bytes.Compare(detalles[a].ProductoID[:], detalles[b].ProductoID[:]) < 0
	})

	compra := &model.Compra{
		Fecha:         time.Now(),
		UsuarioID:     usuarioID,
		ProveedorID:   proveedorID,
		NumeroFactura: req.NumeroFactura,
		Subtotal:      subtotal,
		Impuesto:      decimal.Zero,
		Total:         subtotal,
		Estado:        model.EstadoCompletada,
		Notas:         req.Notas,
	}
	compra.Detalles = detalles

	err = runTx(ctx, s.compraRepo.DB(), func(tx *gorm.DB) error {
		if err := s.compraRepo.CreateTx(tx, compra); err != nil {
			return clasificarErrorDB(err, "")
		}

		for i := range compra.Detalles {
			d := &compra.Detalles[i]

			// Lock first to read the pre-intake stock and cost; the entrada
			// movement re-reads the same row without blocking.
			producto, err := s.productoRepo.FindByIDForUpdateTx(tx, d.ProductoID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductoNoEncontradoError{ProductoID: d.ProductoID}
				}
				return clasificarErrorDB(err, "")
			}

			_, err = s.inventarioSvc.RegistrarMovimientoTx(ctx, tx, MovimientoParams{
				ProductoID:   d.ProductoID,
				Tipo:         model.MovimientoEntrada,
				Cantidad:     d.Cantidad,
				UsuarioID:    usuarioID,
				Referencia:   model.ReferenciaCompra,
				ReferenciaID: &compra.ID,
				Motivo:       "Compra a proveedor",
			})
			if err != nil {
				return err
			}

			nuevoCosto := costoPromedioPonderado(producto, d.Cantidad, d.PrecioUnitario)
			if err := s.productoRepo.UpdateCostosTx(tx, d.ProductoID, d.PrecioUnitario, nuevoCosto); err != nil {
				return clasificarErrorDB(err, "")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := compraToResponse(compra)
	return &resp, nil
}

// costoPromedioPonderado blends the existing inventory value with the intake:
// ((stock × costo) + (cantidad × precio)) / (stock + cantidad).
func costoPromedioPonderado(producto *model.Producto, cantidad int, precio decimal.Decimal) decimal.Decimal {
	stockAnterior := decimal.NewFromInt(int64(producto.Stock))
	entrante := decimal.NewFromInt(int64(cantidad))
	totalUnidades := stockAnterior.Add(entrante)
	if totalUnidades.IsZero() {
		return precio.Round(2)
	}
	valorAnterior := stockAnterior.Mul(producto.CostoUnitario())
	valorEntrante := entrante.Mul(precio)
	return valorAnterior.Add(valorEntrante).Div(totalUnidades).Round(2)
}

func (s *compraService) ObtenerCompra(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error) {
	compra, err := s.compraRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("compra %s no encontrada", id)
		}
		return nil, err
	}
	resp := compraToResponse(compra)
	return &resp, nil
}

func (s *compraService) ListCompras(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error) {
	compras, total, err := s.compraRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompraResponse, 0, len(compras))
	for i := range compras {
		items = append(items, compraToResponse(&compras[i]))
	}
	return &dto.CompraListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func compraToResponse(c *model.Compra) dto.CompraResponse {
	resp := dto.CompraResponse{
		ID:            c.ID.String(),
		Fecha:         c.Fecha.Format(time.RFC3339),
		UsuarioID:     c.UsuarioID.String(),
		ProveedorID:   c.ProveedorID.String(),
		NumeroFactura: c.NumeroFactura,
		Subtotal:      c.Subtotal,
		Impuesto:      c.Impuesto,
		Total:         c.Total,
		Estado:        c.Estado,
		Notas:         c.Notas,
	}
	if c.Proveedor != nil {
		resp.Proveedor = c.Proveedor.RazonSocial
	}
	resp.Detalles = make([]dto.DetalleCompraResponse, 0, len(c.Detalles))
	for i := range c.Detalles {
		d := &c.Detalles[i]
		item := dto.DetalleCompraResponse{
			ProductoID:     d.ProductoID.String(),
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		}
		if d.Producto != nil {
			item.Producto = d.Producto.Nombre
		}
		resp.Detalles = append(resp.Detalles, item)
	}
	return resp
}
