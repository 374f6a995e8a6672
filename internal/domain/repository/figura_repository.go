package repository

import (
	"context"

	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
)

// FiguraRepository define el puerto de persistencia para Figura.
// GetByID devuelve (nil, nil) cuando la figura no existe.
type FiguraRepository interface {
	Create(ctx context.Context, figura *entity.Figura) error
	GetByID(ctx context.Context, id string) (*entity.Figura, error)
	// GetByIDs devuelve las figuras encontradas indexadas por ID; los IDs
	// ausentes simplemente no aparecen en el mapa.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Figura, error)
	List(ctx context.Context) ([]*entity.Figura, error)
	ListByAlbum(ctx context.Context, albumID string) ([]*entity.Figura, error)
	ListByAlbumAndTipo(ctx context.Context, albumID, tipo string) ([]*entity.Figura, error)
	Update(ctx context.Context, figura *entity.Figura) error
	Delete(ctx context.Context, id string) error
	// RenameTipo reetiqueta todas las figuras del álbum con tipo oldKey a
	// newKey y devuelve cuántas cambió. Con oldKey ya ausente el filtro
	// queda vacío, por eso la cascada es idempotente al reintentar.
	RenameTipo(ctx context.Context, albumID, oldKey, newKey string) (int64, error)
}
