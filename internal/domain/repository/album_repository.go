package repository

import (
	"context"

	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
)

// AlbumRepository define el puerto de persistencia para Album (DIP).
// Los Get devuelven (nil, nil) cuando el álbum no existe.
type AlbumRepository interface {
	Create(ctx context.Context, album *entity.Album) error
	GetByID(ctx context.Context, id string) (*entity.Album, error)
	List(ctx context.Context) ([]*entity.Album, error)
	Update(ctx context.Context, album *entity.Album) error
	Delete(ctx context.Context, id string) error
	// UpdateTipos reemplaza el catálogo de tipos del álbum. Es el primer
	// paso (y el que hace commit primero) de la cascada de rename.
	UpdateTipos(ctx context.Context, albumID string, tipos []entity.TipoEntry) error
}
