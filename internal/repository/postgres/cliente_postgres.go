package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/grupo4/clientes-api/internal/domain"
	"github.com/grupo4/clientes-api/internal/repository"
)

const clienteColumns = `
	cliente_id, tipo_documento, numero_documento, nombre, correo, telefono,
	direccion, datos_extra, creado_por, fecha_creacion, modificado_por,
	fecha_modificacion, activo`

type clienteRepository struct {
	db *sqlx.DB
}

// NewClienteRepository creates a new PostgreSQL customer repository
func NewClienteRepository(db *sqlx.DB) repository.ClienteRepository {
	return &clienteRepository{db: db}
}

// List returns active customers, newest first, optionally filtered by name
func (r *clienteRepository) List(ctx context.Context, nombre string) ([]domain.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE activo = TRUE`
	args := []interface{}{}

	if nombre != "" {
		query += ` AND nombre ILIKE '%' || $1 || '%'`
		args = append(args, nombre)
	}
	query += ` ORDER BY cliente_id DESC`

	clientes := []domain.Cliente{}
	if err := r.db.SelectContext(ctx, &clientes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list clientes: %w", err)
	}

	return clientes, nil
}

// GetByID retrieves an active customer by id
func (r *clienteRepository) GetByID(ctx context.Context, id int) (*domain.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE cliente_id = $1 AND activo = TRUE`

	var cliente domain.Cliente
	err := r.db.GetContext(ctx, &cliente, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("cliente %d: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cliente by id: %w", err)
	}

	return &cliente, nil
}

// Create inserts a new customer and returns the stored row
func (r *clienteRepository) Create(ctx context.Context, cliente *domain.Cliente) (*domain.Cliente, error) {
	query := `
		INSERT INTO clientes (
			tipo_documento, numero_documento, nombre, correo, telefono,
			direccion, datos_extra, creado_por, activo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING ` + clienteColumns

	var created domain.Cliente
	err := r.db.GetContext(ctx, &created, query,
		cliente.TipoDocumento,
		cliente.NumeroDocumento,
		cliente.Nombre,
		cliente.Correo,
		cliente.Telefono,
		cliente.Direccion,
		cliente.DatosExtra,
		cliente.CreadoPor,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cliente: %w", err)
	}

	return &created, nil
}

// Update replaces the mutable fields of a customer and returns the stored row
func (r *clienteRepository) Update(ctx context.Context, cliente *domain.Cliente) (*domain.Cliente, error) {
	query := `
		UPDATE clientes
		SET tipo_documento     = $1,
		    numero_documento   = $2,
		    nombre             = $3,
		    correo             = $4,
		    telefono           = $5,
		    direccion          = $6,
		    datos_extra        = $7,
		    modificado_por     = $8,
		    fecha_modificacion = NOW(),
		    activo             = $9
		WHERE cliente_id = $10
		RETURNING ` + clienteColumns

	var updated domain.Cliente
	err := r.db.GetContext(ctx, &updated, query,
		cliente.TipoDocumento,
		cliente.NumeroDocumento,
		cliente.Nombre,
		cliente.Correo,
		cliente.Telefono,
		cliente.Direccion,
		cliente.DatosExtra,
		cliente.ModificadoPor,
		cliente.Activo,
		cliente.ClienteID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("cliente %d: %w", cliente.ClienteID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update cliente: %w", err)
	}

	return &updated, nil
}

// Deactivate performs the logical delete (activo=false)
func (r *clienteRepository) Deactivate(ctx context.Context, id, modificadoPor int) error {
	query := `
		UPDATE clientes
		SET activo = FALSE, modificado_por = $1, fecha_modificacion = NOW()
		WHERE cliente_id = $2 AND activo = TRUE`

	result, err := r.db.ExecContext(ctx, query, modificadoPor, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate cliente: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("cliente %d: %w", id, repository.ErrNotFound)
	}

	return nil
}
