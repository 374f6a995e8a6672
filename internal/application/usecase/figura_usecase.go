package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JPostigo48/FigurAndoBackend/internal/application/dto"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/repository"
	"github.com/JPostigo48/FigurAndoBackend/pkg/logger"
)

// FiguraUseCase ciclo de vida de figuras: alta con fan-out a los usuarios
// que poseen el álbum, update sin cascada y borrado con limpieza de
// inventarios.
type FiguraUseCase struct {
	albumRepo   repository.AlbumRepository
	figuraRepo  repository.FiguraRepository
	usuarioRepo repository.UsuarioRepository
	txRunner    TxRunner
	cache       CatalogCache
	log         *logger.Logger
}

// NewFiguraUseCase construye el caso de uso.
func NewFiguraUseCase(
	albumRepo repository.AlbumRepository,
	figuraRepo repository.FiguraRepository,
	usuarioRepo repository.UsuarioRepository,
	txRunner TxRunner,
	cache CatalogCache,
	log *logger.Logger,
) *FiguraUseCase {
	return &FiguraUseCase{
		albumRepo:   albumRepo,
		figuraRepo:  figuraRepo,
		usuarioRepo: usuarioRepo,
		txRunner:    txRunner,
		cache:       cache,
		log:         log,
	}
}

// List devuelve todas las figuras.
func (uc *FiguraUseCase) List(ctx context.Context) ([]dto.FiguraResponse, error) {
	figuras, err := uc.figuraRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FiguraResponse, 0, len(figuras))
	for _, f := range figuras {
		out = append(out, toFiguraResponse(f))
	}
	return out, nil
}

// ListByAlbum devuelve las figuras de un álbum (vía cache de lectura).
func (uc *FiguraUseCase) ListByAlbum(ctx context.Context, albumID string) ([]dto.FiguraResponse, error) {
	figuras, err := uc.cache.FigurasByAlbum(ctx, albumID, func(ctx context.Context) ([]*entity.Figura, error) {
		return uc.figuraRepo.ListByAlbum(ctx, albumID)
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.FiguraResponse, 0, len(figuras))
	for _, f := range figuras {
		out = append(out, toFiguraResponse(f))
	}
	return out, nil
}

// Create crea una figura en un álbum. El tipo debe existir en el catálogo
// del álbum. Tras crearla, cada usuario que ya posee el álbum recibe una
// entrada de inventario en cero (fan-out); una entrada ya presente se
// respeta, así el fan-out también es idempotente.
func (uc *FiguraUseCase) Create(ctx context.Context, in dto.CreateFiguraRequest) (*dto.FiguraResponse, error) {
	if in.AlbumID == "" || in.Code == "" || in.Tipo == "" {
		return nil, domain.ErrInvalidInput
	}
	album, err := uc.albumRepo.GetByID(ctx, in.AlbumID)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, fmt.Errorf("%w: álbum %s", domain.ErrNotFound, in.AlbumID)
	}
	if !album.HasTipo(in.Tipo) {
		return nil, fmt.Errorf("%w: '%s' en el álbum '%s'", domain.ErrInvalidTipo, in.Tipo, album.Nombre)
	}
	now := time.Now()
	figura := &entity.Figura{
		ID:        uuid.New().String(),
		AlbumID:   in.AlbumID,
		Code:      in.Code,
		Tipo:      in.Tipo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.figuraRepo.Create(ctx, figura); err != nil {
		return nil, err
	}
	_ = uc.cache.InvalidateAlbum(ctx, in.AlbumID)

	if err := uc.fanOut(ctx, figura); err != nil {
		// La figura ya existe; el fan-out pendiente lo completa la adopción
		// del álbum (AddAlbum hace unión de conjuntos).
		uc.log.Error().Err(err).Str("figura", figura.ID).Msg("fan-out incompleto al crear figura")
	}
	resp := toFiguraResponse(figura)
	return &resp, nil
}

func (uc *FiguraUseCase) fanOut(ctx context.Context, figura *entity.Figura) error {
	userIDs, err := uc.usuarioRepo.ListIDsByAlbum(ctx, figura.AlbumID)
	if err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)
	for _, userID := range userIDs {
		g.Go(func() error {
			return uc.txRunner.Run(gctx, func(
				_ repository.AlbumRepository,
				_ repository.FiguraRepository,
				usuarioRepo repository.UsuarioRepository,
			) error {
				usuario, err := usuarioRepo.GetForUpdate(gctx, userID)
				if err != nil {
					return err
				}
				if usuario == nil || usuario.FindFigura(figura.ID) != nil {
					return nil
				}
				usuario.Figuras = append(usuario.Figuras, entity.FiguraUsuario{
					FiguraID: figura.ID, Tipo: figura.Tipo, Count: 0,
				})
				return usuarioRepo.Save(gctx, usuario)
			})
		})
	}
	return g.Wait()
}

// Update modifica code y/o tipo de una figura, sin cascada: los usuarios
// siguen apuntando al mismo ID.
func (uc *FiguraUseCase) Update(ctx context.Context, id string, in dto.UpdateFiguraRequest) (*dto.FiguraResponse, error) {
	figura, err := uc.figuraRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if figura == nil {
		return nil, fmt.Errorf("%w: figura %s", domain.ErrNotFound, id)
	}
	if in.Code != nil {
		figura.Code = *in.Code
	}
	if in.Tipo != nil {
		figura.Tipo = *in.Tipo
	}
	figura.UpdatedAt = time.Now()
	if err := uc.figuraRepo.Update(ctx, figura); err != nil {
		return nil, err
	}
	_ = uc.cache.InvalidateAlbum(ctx, figura.AlbumID)
	resp := toFiguraResponse(figura)
	return &resp, nil
}

// Delete elimina la figura y barre los inventarios: cada usuario que posee
// el álbum pierde su entrada (cascada de borrado del ciclo de vida).
func (uc *FiguraUseCase) Delete(ctx context.Context, id string) error {
	figura, err := uc.figuraRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if figura == nil {
		return fmt.Errorf("%w: figura %s", domain.ErrNotFound, id)
	}
	if err := uc.figuraRepo.Delete(ctx, id); err != nil {
		return err
	}
	_ = uc.cache.InvalidateAlbum(ctx, figura.AlbumID)

	userIDs, err := uc.usuarioRepo.ListIDsByAlbum(ctx, figura.AlbumID)
	if err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)
	for _, userID := range userIDs {
		g.Go(func() error {
			return uc.txRunner.Run(gctx, func(
				_ repository.AlbumRepository,
				_ repository.FiguraRepository,
				usuarioRepo repository.UsuarioRepository,
			) error {
				usuario, err := usuarioRepo.GetForUpdate(gctx, userID)
				if err != nil {
					return err
				}
				if usuario == nil || usuario.FindFigura(id) == nil {
					return nil
				}
				usuario.RemoveFigura(id)
				return usuarioRepo.Save(gctx, usuario)
			})
		})
	}
	return g.Wait()
}

func toFiguraResponse(f *entity.Figura) dto.FiguraResponse {
	return dto.FiguraResponse{ID: f.ID, AlbumID: f.AlbumID, Code: f.Code, Tipo: f.Tipo}
}
