package usecase

import (
	"context"

	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con
// repositorios atados a esa tx. La cascada de rename y el fan-out de
// figuras lo usan para abrir una sección exclusiva por cada usuario barrido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		albumRepo repository.AlbumRepository,
		figuraRepo repository.FiguraRepository,
		usuarioRepo repository.UsuarioRepository,
	) error) error
}

// CatalogCache cache de lectura para el catálogo (álbumes y figuras por
// álbum). El loader se invoca solo en miss; Invalidate se llama en cada
// mutación del catálogo.
type CatalogCache interface {
	Albumes(ctx context.Context, load func(context.Context) ([]*entity.Album, error)) ([]*entity.Album, error)
	Album(ctx context.Context, id string, load func(context.Context) (*entity.Album, error)) (*entity.Album, error)
	FigurasByAlbum(ctx context.Context, albumID string, load func(context.Context) ([]*entity.Figura, error)) ([]*entity.Figura, error)
	InvalidateAlbum(ctx context.Context, albumID string) error
	InvalidateAlbumes(ctx context.Context) error
}
