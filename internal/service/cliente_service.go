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

type ClienteService interface {
	CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerCliente(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	ListClientes(ctx context.Context, nombre string) ([]dto.ClienteResponse, error)
	ActualizarCliente(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	EliminarCliente(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	clienteRepo repository.ClienteRepository
}

func NewClienteService(clienteRepo repository.ClienteRepository) ClienteService {
	return &clienteService{clienteRepo: clienteRepo}
}

func (s *clienteService) CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	tipo := req.TipoCliente
	if tipo == "" {
		tipo = "minorista"
	}
	cliente := &model.Cliente{
		Nombre:      req.Nombre,
		RucDni:      req.RucDni,
		Direccion:   req.Direccion,
		Telefono:    req.Telefono,
		Email:       req.Email,
		TipoCliente: tipo,
		Activo:      true,
	}
	if err := s.clienteRepo.Create(ctx, cliente); err != nil {
		return nil, clasificarErrorDB(err, "")
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) ObtenerCliente(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.clienteRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cliente %s no encontrado", id)
		}
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) ListClientes(ctx context.Context, nombre string) ([]dto.ClienteResponse, error) {
	clientes, err := s.clienteRepo.List(ctx, nombre)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		items = append(items, clienteToResponse(&clientes[i]))
	}
	return items, nil
}

func (s *clienteService) ActualizarCliente(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.clienteRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cliente %s no encontrado", id)
		}
		return nil, err
	}
	if req.Nombre != nil {
		cliente.Nombre = *req.Nombre
	}
	if req.RucDni != nil {
		cliente.RucDni = req.RucDni
	}
	if req.Direccion != nil {
		cliente.Direccion = req.Direccion
	}
	if req.Telefono != nil {
		cliente.Telefono = req.Telefono
	}
	if req.Email != nil {
		cliente.Email = req.Email
	}
	if req.TipoCliente != nil {
		cliente.TipoCliente = *req.TipoCliente
	}
	if err := s.clienteRepo.Update(ctx, cliente); err != nil {
		return nil, clasificarErrorDB(err, "")
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) EliminarCliente(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clienteRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("cliente %s no encontrado", id)
		}
		return err
	}
	return s.clienteRepo.SoftDelete(ctx, id)
}

func clienteToResponse(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:                c.ID.String(),
		Nombre:            c.Nombre,
		RucDni:            c.RucDni,
		Direccion:         c.Direccion,
		Telefono:          c.Telefono,
		Email:             c.Email,
		TipoCliente:       c.TipoCliente,
		CreditoDisponible: c.CreditoDisponible,
		Activo:            c.Activo,
	}
}
