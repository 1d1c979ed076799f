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

type ProveedorService interface {
	CrearProveedor(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	ObtenerProveedor(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	ListProveedores(ctx context.Context) ([]dto.ProveedorResponse, error)
	ActualizarProveedor(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error)
	EliminarProveedor(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	proveedorRepo repository.ProveedorRepository
}

func NewProveedorService(proveedorRepo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{proveedorRepo: proveedorRepo}
}

func (s *proveedorService) CrearProveedor(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor := &model.Proveedor{
		RazonSocial:   req.RazonSocial,
		RUC:           req.RUC,
		Telefono:      req.Telefono,
		Email:         req.Email,
		Direccion:     req.Direccion,
		CondicionPago: req.CondicionPago,
		Activo:        true,
	}
	if err := s.proveedorRepo.Create(ctx, proveedor); err != nil {
		return nil, clasificarErrorDB(err, "")
	}
	resp := proveedorToResponse(proveedor)
	return &resp, nil
}

func (s *proveedorService) ObtenerProveedor(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	proveedor, err := s.proveedorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("proveedor %s no encontrado", id)
		}
		return nil, err
	}
	resp := proveedorToResponse(proveedor)
	return &resp, nil
}

func (s *proveedorService) ListProveedores(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.proveedorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		items = append(items, proveedorToResponse(&proveedores[i]))
	}
	return items, nil
}

func (s *proveedorService) ActualizarProveedor(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor, err := s.proveedorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("proveedor %s no encontrado", id)
		}
		return nil, err
	}
	if req.RazonSocial != nil {
		proveedor.RazonSocial = *req.RazonSocial
	}
	if req.RUC != nil {
		proveedor.RUC = *req.RUC
	}
	if req.Telefono != nil {
		proveedor.Telefono = req.Telefono
	}
	if req.Email != nil {
		proveedor.Email = req.Email
	}
	if req.Direccion != nil {
		proveedor.Direccion = req.Direccion
	}
	if req.CondicionPago != nil {
		proveedor.CondicionPago = req.CondicionPago
	}
	if err := s.proveedorRepo.Update(ctx, proveedor); err != nil {
		return nil, clasificarErrorDB(err, "")
	}
	resp := proveedorToResponse(proveedor)
	return &resp, nil
}

func (s *proveedorService) EliminarProveedor(ctx context.Context, id uuid.UUID) error {
	if _, err := s.proveedorRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("proveedor %s no encontrado", id)
		}
		return err
	}
	return s.proveedorRepo.SoftDelete(ctx, id)
}

func proveedorToResponse(p *model.Proveedor) dto.ProveedorResponse {
	return dto.ProveedorResponse{
		ID:            p.ID.String(),
		RazonSocial:   p.RazonSocial,
		RUC:           p.RUC,
		Telefono:      p.Telefono,
		Email:         p.Email,
		Direccion:     p.Direccion,
		CondicionPago: p.CondicionPago,
		Activo:        p.Activo,
	}
}
