package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JPostigo48/FigurAndoBackend/internal/domain"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL.
// Inventario, sets y pedidos viven como JSONB dentro de la fila: el agregado
// completo es la unidad de consistencia y revision sube en cada Save.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const usuarioColumns = `id, nombre, contra_hash, rol, albumes, figuras_usuario, sets_usuario, orders, revision, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	figuras, sets, orders, err := marshalSubdocs(u)
	if err != nil {
		return err
	}
	albumes := u.Albumes
	if albumes == nil {
		albumes = []string{}
	}
	query := `
		INSERT INTO usuarios (id, nombre, contra_hash, rol, albumes, figuras_usuario, sets_usuario, orders, revision, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		u.ID, u.Nombre, u.ContraHash, u.Rol, albumes, figuras, sets, orders,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNombreAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByNombre obtiene un usuario por nombre (único).
func (r *UsuarioRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE nombre = $1`
	return r.getOne(ctx, query, nombre)
}

// GetForUpdate obtiene el agregado y bloquea su fila (SELECT FOR UPDATE)
// para que check-then-mutate sea atómico por usuario. Usar dentro de una tx.
func (r *UsuarioRepo) GetForUpdate(ctx context.Context, id string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

// Save persiste los subdocumentos del agregado y sube revision en uno.
func (r *UsuarioRepo) Save(ctx context.Context, u *entity.Usuario) error {
	figuras, sets, orders, err := marshalSubdocs(u)
	if err != nil {
		return err
	}
	albumes := u.Albumes
	if albumes == nil {
		albumes = []string{}
	}
	query := `
		UPDATE usuarios
		SET albumes = $2, figuras_usuario = $3, sets_usuario = $4, orders = $5,
		    revision = revision + 1, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, u.ID, albumes, figuras, sets, orders)
	if err != nil {
		return fmt.Errorf("save usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUsuarioNotFound
	}
	return nil
}

// ListIDsByAlbum devuelve los IDs de los usuarios que poseen el álbum.
func (r *UsuarioRepo) ListIDsByAlbum(ctx context.Context, albumID string) ([]string, error) {
	// @> en vez de = ANY() para que el índice GIN sirva la consulta.
	query := `SELECT id FROM usuarios WHERE albumes @> ARRAY[$1]`
	rows, err := r.q.Query(ctx, query, albumID)
	if err != nil {
		return nil, fmt.Errorf("list usuarios by album: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan usuario id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *UsuarioRepo) getOne(ctx context.Context, query string, arg any) (*entity.Usuario, error) {
	var u entity.Usuario
	var figuras, sets, orders []byte
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Nombre, &u.ContraHash, &u.Rol, &u.Albumes,
		&figuras, &sets, &orders, &u.Revision, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	if len(figuras) > 0 {
		if err := json.Unmarshal(figuras, &u.Figuras); err != nil {
			return nil, fmt.Errorf("unmarshal figuras_usuario: %w", err)
		}
	}
	if len(sets) > 0 {
		if err := json.Unmarshal(sets, &u.Sets); err != nil {
			return nil, fmt.Errorf("unmarshal sets_usuario: %w", err)
		}
	}
	if len(orders) > 0 {
		if err := json.Unmarshal(orders, &u.Orders); err != nil {
			return nil, fmt.Errorf("unmarshal orders: %w", err)
		}
	}
	return &u, nil
}

func marshalSubdocs(u *entity.Usuario) (figuras, sets, orders []byte, err error) {
	if figuras, err = marshalOrEmpty(u.Figuras); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal figuras_usuario: %w", err)
	}
	if sets, err = marshalOrEmpty(u.Sets); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal sets_usuario: %w", err)
	}
	if orders, err = marshalOrEmpty(u.Orders); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal orders: %w", err)
	}
	return figuras, sets, orders, nil
}

// marshalOrEmpty serializa un slice como arreglo JSON, nunca como null.
func marshalOrEmpty[T any](v []T) ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}
