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

var _ repository.AlbumRepository = (*AlbumRepo)(nil)

// AlbumRepo implementación de AlbumRepository sobre PostgreSQL.
// El catálogo de tipos se guarda como JSONB en la misma fila.
type AlbumRepo struct {
	q Querier
}

// NewAlbumRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlbumRepository(q Querier) *AlbumRepo {
	return &AlbumRepo{q: q}
}

// Create persiste un nuevo álbum.
func (r *AlbumRepo) Create(ctx context.Context, album *entity.Album) error {
	tipos, err := json.Marshal(album.Tipos)
	if err != nil {
		return fmt.Errorf("marshal tipos: %w", err)
	}
	query := `
		INSERT INTO albums (id, nombre, editorial, imagen, tipos, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.q.Exec(ctx, query,
		album.ID, album.Nombre, album.Editorial, album.Imagen, tipos,
		album.CreatedAt, album.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert album: %w", err)
	}
	return nil
}

// GetByID obtiene un álbum por ID. Devuelve (nil, nil) si no existe.
func (r *AlbumRepo) GetByID(ctx context.Context, id string) (*entity.Album, error) {
	query := `
		SELECT id, nombre, editorial, imagen, tipos, created_at, updated_at
		FROM albums WHERE id = $1`
	album, err := scanAlbum(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get album by id: %w", err)
	}
	return album, nil
}

// List devuelve todos los álbumes ordenados por nombre.
func (r *AlbumRepo) List(ctx context.Context) ([]*entity.Album, error) {
	query := `
		SELECT id, nombre, editorial, imagen, tipos, created_at, updated_at
		FROM albums ORDER BY nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	var out []*entity.Album
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		out = append(out, album)
	}
	return out, rows.Err()
}

// Update actualiza los campos descriptivos del álbum.
func (r *AlbumRepo) Update(ctx context.Context, album *entity.Album) error {
	query := `
		UPDATE albums SET nombre = $2, editorial = $3, imagen = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		album.ID, album.Nombre, album.Editorial, album.Imagen, album.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el álbum por ID.
func (r *AlbumRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	return nil
}

// UpdateTipos reemplaza el catálogo de tipos. Es un UPDATE suelto: commitea
// antes de que empiecen las cascadas de rename.
func (r *AlbumRepo) UpdateTipos(ctx context.Context, albumID string, tipos []entity.TipoEntry) error {
	raw, err := json.Marshal(tipos)
	if err != nil {
		return fmt.Errorf("marshal tipos: %w", err)
	}
	query := `UPDATE albums SET tipos = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, albumID, raw)
	if err != nil {
		return fmt.Errorf("update tipos: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAlbum(row pgx.Row) (*entity.Album, error) {
	var a entity.Album
	var tipos []byte
	err := row.Scan(&a.ID, &a.Nombre, &a.Editorial, &a.Imagen, &tipos, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(tipos) > 0 {
		if err := json.Unmarshal(tipos, &a.Tipos); err != nil {
			return nil, fmt.Errorf("unmarshal tipos: %w", err)
		}
	}
	return &a, nil
}
