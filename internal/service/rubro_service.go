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

type RubroService interface {
	CrearRubro(ctx context.Context, req dto.CrearRubroRequest) (*dto.RubroResponse, error)
	ListRubros(ctx context.Context) ([]dto.RubroResponse, error)
	ActualizarRubro(ctx context.Context, id uuid.UUID, req dto.ActualizarRubroRequest) (*dto.RubroResponse, error)
	EliminarRubro(ctx context.Context, id uuid.UUID) error
}

type rubroService struct {
	rubroRepo repository.RubroRepository
}

func NewRubroService(rubroRepo repository.RubroRepository) RubroService {
	return &rubroService{rubroRepo: rubroRepo}
}

func (s *rubroService) CrearRubro(ctx context.Context, req dto.CrearRubroRequest) (*dto.RubroResponse, error) {
	rubro := &model.Rubro{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if err := s.rubroRepo.Create(ctx, rubro); err != nil {
		return nil, clasificarErrorDB(err, "")
	}
	resp := rubroToResponse(rubro)
	return &resp, nil
}

func (s *rubroService) ListRubros(ctx context.Context) ([]dto.RubroResponse, error) {
	rubros, err := s.rubroRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RubroResponse, 0, len(rubros))
	for i := range rubros {
		items = append(items, rubroToResponse(&rubros[i]))
	}
	return items, nil
}

func (s *rubroService) ActualizarRubro(ctx context.Context, id uuid.UUID, req dto.ActualizarRubroRequest) (*dto.RubroResponse, error) {
	rubro, err := s.rubroRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("rubro %s no encontrado", id)
		}
		return nil, err
	}
	if req.Nombre != nil {
		rubro.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		rubro.Descripcion = req.Descripcion
	}
	if err := s.rubroRepo.Update(ctx, rubro); err != nil {
		return nil, clasificarErrorDB(err, "")
	}
	resp := rubroToResponse(rubro)
	return &resp, nil
}

func (s *rubroService) EliminarRubro(ctx context.Context, id uuid.UUID) error {
	if _, err := s.rubroRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("rubro %s no encontrado", id)
		}
		return err
	}
	return s.rubroRepo.SoftDelete(ctx, id)
}

func rubroToResponse(r *model.Rubro) dto.RubroResponse {
	return dto.RubroResponse{
		ID:          r.ID.String(),
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		Activo:      r.Activo,
	}
}
