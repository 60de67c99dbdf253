package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/grupo4/clientes-api/internal/domain"
	"github.com/grupo4/clientes-api/internal/repository"
)

type ClienteService struct {
	clienteRepo repository.ClienteRepository
	auditoria   *AuditoriaService
}

// ClienteInput is the mutable payload for create/update operations.
type ClienteInput struct {
	TipoDocumento   *string `json:"tipo_documento"`
	NumeroDocumento *string `json:"numero_documento"`
	Nombre          string  `json:"nombre"`
	Correo          *string `json:"correo"`
	Telefono        *string `json:"telefono"`
	Direccion       *string `json:"direccion"`
	DatosExtra      *string `json:"datos_extra"`
	Activo          *bool   `json:"activo"`
}

// Validar returns the list of payload problems, empty when the input is
// acceptable.
func (i *ClienteInput) Validar() []string {
	var errores []string

	if strings.TrimSpace(i.Nombre) == "" || len(strings.TrimSpace(i.Nombre)) < 3 {
		errores = append(errores, "El nombre es obligatorio y debe tener al menos 3 caracteres.")
	}

	if i.Correo != nil && *i.Correo != "" && !strings.Contains(*i.Correo, "@") {
		errores = append(errores, "El correo no tiene un formato válido.")
	}

	return errores
}

func NewClienteService(clienteRepo repository.ClienteRepository, auditoria *AuditoriaService) *ClienteService {
	return &ClienteService{
		clienteRepo: clienteRepo,
		auditoria:   auditoria,
	}
}

func (s *ClienteService) Listar(ctx context.Context, nombre string) ([]domain.Cliente, error) {
	return s.clienteRepo.List(ctx, nombre)
}

func (s *ClienteService) Obtener(ctx context.Context, id int) (*domain.Cliente, error) {
	return s.clienteRepo.GetByID(ctx, id)
}

func (s *ClienteService) Crear(ctx context.Context, input ClienteInput, userID int, ip string) (*domain.Cliente, error) {
	cliente := &domain.Cliente{
		TipoDocumento:   input.TipoDocumento,
		NumeroDocumento: input.NumeroDocumento,
		Nombre:          strings.TrimSpace(input.Nombre),
		Correo:          input.Correo,
		Telefono:        input.Telefono,
		Direccion:       input.Direccion,
		DatosExtra:      input.DatosExtra,
		CreadoPor:       &userID,
	}

	created, err := s.clienteRepo.Create(ctx, cliente)
	if err != nil {
		return nil, err
	}

	s.registrar(ctx, "crear", created.ClienteID, userID, ip)
	return created, nil
}

func (s *ClienteService) Actualizar(ctx context.Context, id int, input ClienteInput, userID int, ip string) (*domain.Cliente, error) {
	activo := true
	if input.Activo != nil {
		activo = *input.Activo
	}

	cliente := &domain.Cliente{
		ClienteID:       id,
		TipoDocumento:   input.TipoDocumento,
		NumeroDocumento: input.NumeroDocumento,
		Nombre:          strings.TrimSpace(input.Nombre),
		Correo:          input.Correo,
		Telefono:        input.Telefono,
		Direccion:       input.Direccion,
		DatosExtra:      input.DatosExtra,
		ModificadoPor:   &userID,
		Activo:          activo,
	}

	updated, err := s.clienteRepo.Update(ctx, cliente)
	if err != nil {
		return nil, err
	}

	s.registrar(ctx, "actualizar", id, userID, ip)
	return updated, nil
}

func (s *ClienteService) Eliminar(ctx context.Context, id, userID int, ip string) error {
	if err := s.clienteRepo.Deactivate(ctx, id, userID); err != nil {
		return err
	}

	s.registrar(ctx, "eliminar", id, userID, ip)
	return nil
}

func (s *ClienteService) registrar(ctx context.Context, operacion string, clienteID, userID int, ip string) {
	entidadID := strconv.Itoa(clienteID)
	detalles := fmt.Sprintf("cliente %d", clienteID)

	evento := &domain.EventoAuditoria{
		Entidad:      "CLIENTES",
		EntidadID:    &entidadID,
		Operacion:    operacion,
		RealizadoPor: &userID,
		Detalles:     &detalles,
	}
	if ip != "" {
		evento.IP = &ip
	}

	s.auditoria.Registrar(ctx, evento)
}
