package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/repository"
)

var _ repository.FiguraRepository = (*FiguraRepo)(nil)

// FiguraRepo implementación de FiguraRepository sobre PostgreSQL.
type FiguraRepo struct {
	q Querier
}

// NewFiguraRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFiguraRepository(q Querier) *FiguraRepo {
	return &FiguraRepo{q: q}
}

const figuraColumns = `id, album_id, code, tipo, created_at, updated_at`

// Create persiste una nueva figura.
func (r *FiguraRepo) Create(ctx context.Context, f *entity.Figura) error {
	query := `
		INSERT INTO figuras (id, album_id, code, tipo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, f.ID, f.AlbumID, f.Code, f.Tipo, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert figura: %w", err)
	}
	return nil
}

// GetByID obtiene una figura por ID. Devuelve (nil, nil) si no existe.
func (r *FiguraRepo) GetByID(ctx context.Context, id string) (*entity.Figura, error) {
	query := `SELECT ` + figuraColumns + ` FROM figuras WHERE id = $1`
	f, err := scanFigura(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get figura by id: %w", err)
	}
	return f, nil
}

// GetByIDs devuelve las figuras encontradas indexadas por ID.
func (r *FiguraRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Figura, error) {
	out := make(map[string]*entity.Figura, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + figuraColumns + ` FROM figuras WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get figuras by ids: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		f, err := scanFigura(rows)
		if err != nil {
			return nil, fmt.Errorf("scan figura: %w", err)
		}
		out[f.ID] = f
	}
	return out, rows.Err()
}

// List devuelve todas las figuras.
func (r *FiguraRepo) List(ctx context.Context) ([]*entity.Figura, error) {
	query := `SELECT ` + figuraColumns + ` FROM figuras ORDER BY code`
	return r.queryMany(ctx, query)
}

// ListByAlbum devuelve las figuras de un álbum.
func (r *FiguraRepo) ListByAlbum(ctx context.Context, albumID string) ([]*entity.Figura, error) {
	query := `SELECT ` + figuraColumns + ` FROM figuras WHERE album_id = $1 ORDER BY code`
	return r.queryMany(ctx, query, albumID)
}

// ListByAlbumAndTipo devuelve las figuras de un álbum con ese tipo.
func (r *FiguraRepo) ListByAlbumAndTipo(ctx context.Context, albumID, tipo string) ([]*entity.Figura, error) {
	query := `SELECT ` + figuraColumns + ` FROM figuras WHERE album_id = $1 AND tipo = $2 ORDER BY code`
	return r.queryMany(ctx, query, albumID, tipo)
}

// Update actualiza code y tipo de la figura.
func (r *FiguraRepo) Update(ctx context.Context, f *entity.Figura) error {
	query := `UPDATE figuras SET code = $2, tipo = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, f.ID, f.Code, f.Tipo, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update figura: %w", err)
	}
	return nil
}

// Delete elimina la figura por ID.
func (r *FiguraRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM figuras WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete figura: %w", err)
	}
	return nil
}

// RenameTipo reetiqueta en lote las figuras del álbum con tipo oldKey.
// Al reintentar, el filtro por oldKey queda vacío y no cambia nada.
func (r *FiguraRepo) RenameTipo(ctx context.Context, albumID, oldKey, newKey string) (int64, error) {
	query := `UPDATE figuras SET tipo = $3, updated_at = now() WHERE album_id = $1 AND tipo = $2`
	tag, err := r.q.Exec(ctx, query, albumID, oldKey, newKey)
	if err != nil {
		return 0, fmt.Errorf("rename tipo: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *FiguraRepo) queryMany(ctx context.Context, query string, args ...any) ([]*entity.Figura, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query figuras: %w", err)
	}
	defer rows.Close()
	var out []*entity.Figura
	for rows.Next() {
		f, err := scanFigura(rows)
		if err != nil {
			return nil, fmt.Errorf("scan figura: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func scanFigura(row pgx.Row) (*entity.Figura, error) {
	var f entity.Figura
	err := row.Scan(&f.ID, &f.AlbumID, &f.Code, &f.Tipo, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
