package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Henry-56/ferreteria/internal/dto"
	"github.com/Henry-56/ferreteria/internal/model"
	"github.com/Henry-56/ferreteria/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoService interface {
	// CrearProducto inserts the product with stock 0 and, when stock_inicial
	// is positive, registers an entrada movement in the same transaction.
	CrearProducto(ctx context.Context, req dto.CrearProductoRequest, usuarioID uuid.UUID) (*dto.ProductoResponse, error)
	ObtenerProducto(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	BuscarPorBarcode(ctx context.Context, barcode string) (*dto.ProductoResponse, error)
	ListProductos(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	EliminarProducto(ctx context.Context, id uuid.UUID) error
	ReactivarProducto(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	productoRepo  repository.ProductoRepository
	inventarioSvc InventarioService
}

func NewProductoService(productoRepo repository.ProductoRepository, inventarioSvc InventarioService) ProductoService {
	return &productoService{productoRepo: productoRepo, inventarioSvc: inventarioSvc}
}

func (s *productoService) CrearProducto(ctx context.Context, req dto.CrearProductoRequest, usuarioID uuid.UUID) (*dto.ProductoResponse, error) {
	rubroID, err := uuid.Parse(req.RubroID)
	if err != nil {
		return nil, fmt.Errorf("rubro_id invalido: %w", err)
	}
	var proveedorID *uuid.UUID
	if req.ProveedorID != nil {
		id, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("proveedor_id invalido: %w", err)
		}
		proveedorID = &id
	}

	unidad := req.Unidad
	if unidad == "" {
		unidad = "unidad"
	}

	producto := &model.Producto{
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		RubroID:      rubroID,
		SKU:          req.SKU,
		CodigoBarras: req.CodigoBarras,
		PrecioCompra: req.PrecioCompra.Round(2),
		PrecioVenta:  req.PrecioVenta.Round(2),
		Stock:        0,
		StockMinimo:  req.StockMinimo,
		Unidad:       unidad,
		ProveedorID:  proveedorID,
		Activo:       true,
	}

	err = runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		if err := s.productoRepo.CreateTx(tx, producto); err != nil {
			return clasificarErrorDB(err, "")
		}
		if req.StockInicial > 0 {
			mov, err := s.inventarioSvc.RegistrarMovimientoTx(ctx, tx, MovimientoParams{
				ProductoID: producto.ID,
				Tipo:       model.MovimientoEntrada,
				Cantidad:   req.StockInicial,
				UsuarioID:  usuarioID,
				Referencia: model.ReferenciaAjusteManual,
				Motivo:     "Stock inicial",
			})
			if err != nil {
				return err
			}
			producto.Stock = mov.StockNuevo
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) ObtenerProducto(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	producto, err := s.productoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductoNoEncontradoError{ProductoID: id}
		}
		return nil, err
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) BuscarPorBarcode(ctx context.Context, barcode string) (*dto.ProductoResponse, error) {
	producto, err := s.productoRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductoNoEncontradoError{}
		}
		return nil, err
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) ListProductos(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	productos, total, err := s.productoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.productoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductoNoEncontradoError{ProductoID: id}
		}
		return nil, err
	}

	if req.Nombre != nil {
		producto.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		producto.Descripcion = req.Descripcion
	}
	if req.RubroID != nil {
		rubroID, err := uuid.Parse(*req.RubroID)
		if err != nil {
			return nil, fmt.Errorf("rubro_id invalido: %w", err)
		}
		producto.RubroID = rubroID
	}
	if req.SKU != nil {
		producto.SKU = req.SKU
	}
	if req.CodigoBarras != nil {
		producto.CodigoBarras = req.CodigoBarras
	}
	if req.PrecioCompra != nil {
		producto.PrecioCompra = req.PrecioCompra.Round(2)
	}
	if req.PrecioVenta != nil {
		producto.PrecioVenta = req.PrecioVenta.Round(2)
	}
	if req.StockMinimo != nil {
		producto.StockMinimo = *req.StockMinimo
	}
	if req.Unidad != nil {
		producto.Unidad = *req.Unidad
	}
	if req.ProveedorID != nil {
		proveedorID, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("proveedor_id invalido: %w", err)
		}
		producto.ProveedorID = &proveedorID
	}

	// Stock is deliberately absent: recounts go through AjustarStock.
	if err := s.productoRepo.Update(ctx, producto); err != nil {
		return nil, clasificarErrorDB(err, "")
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) EliminarProducto(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productoRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ProductoNoEncontradoError{ProductoID: id}
		}
		return err
	}
	return s.productoRepo.SoftDelete(ctx, id)
}

func (s *productoService) ReactivarProducto(ctx context.Context, id uuid.UUID) error {
	return s.productoRepo.Reactivar(ctx, id)
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:            p.ID.String(),
		Nombre:        p.Nombre,
		Descripcion:   p.Descripcion,
		RubroID:       p.RubroID.String(),
		SKU:           p.SKU,
		CodigoBarras:  p.CodigoBarras,
		PrecioCompra:  p.PrecioCompra,
		PrecioVenta:   p.PrecioVenta,
		CostoPromedio: p.CostoPromedio,
		Stock:         p.Stock,
		StockMinimo:   p.StockMinimo,
		Unidad:        p.Unidad,
		Activo:        p.Activo,
	}
	if p.Rubro != nil {
		resp.Rubro = p.Rubro.Nombre
	}
	if p.ProveedorID != nil {
		id := p.ProveedorID.String()
		resp.ProveedorID = &id
	}
	return resp
}
