package collection

import (
	"context"
	"fmt"

	"github.com/JPostigo48/FigurAndoBackend/internal/application/dto"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/repository"
)

// InventoryUseCase opera el inventario por usuario: adopción de álbumes,
// ajustes puntuales y lecturas. Toda mutación corre bajo la sección
// exclusiva del usuario (tx + SELECT FOR UPDATE sobre su fila).
type InventoryUseCase struct {
	txRunner    TxRunner
	albumRepo   repository.AlbumRepository
	figuraRepo  repository.FiguraRepository
	usuarioRepo repository.UsuarioRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner TxRunner,
	albumRepo repository.AlbumRepository,
	figuraRepo repository.FiguraRepository,
	usuarioRepo repository.UsuarioRepository,
) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner:    txRunner,
		albumRepo:   albumRepo,
		figuraRepo:  figuraRepo,
		usuarioRepo: usuarioRepo,
	}
}

// AddAlbum adopta un álbum: agrega su ID al usuario (addToSet) y crea una
// entrada en cero por cada figura del álbum que el usuario aún no tenga.
// Es unión de conjuntos: aplicarlo dos veces no duplica entradas.
func (uc *InventoryUseCase) AddAlbum(ctx context.Context, userID, albumID string) (*dto.UsuarioResponse, error) {
	var out *dto.UsuarioResponse
	err := uc.txRunner.Run(ctx, func(
		albumRepo repository.AlbumRepository,
		figuraRepo repository.FiguraRepository,
		usuarioRepo repository.UsuarioRepository,
	) error {
		album, err := albumRepo.GetByID(ctx, albumID)
		if err != nil {
			return err
		}
		if album == nil {
			return fmt.Errorf("%w: álbum %s", domain.ErrNotFound, albumID)
		}
		usuario, err := usuarioRepo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if usuario == nil {
			return domain.ErrUsuarioNotFound
		}
		figuras, err := figuraRepo.ListByAlbum(ctx, albumID)
		if err != nil {
			return err
		}
		usuario.AddAlbum(albumID)
		for _, f := range figuras {
			if usuario.FindFigura(f.ID) == nil {
				usuario.Figuras = append(usuario.Figuras, entity.FiguraUsuario{
					FiguraID: f.ID, Tipo: f.Tipo, Count: 0,
				})
			}
		}
		if err := usuarioRepo.Save(ctx, usuario); err != nil {
			return err
		}
		out = toUsuarioResponse(usuario)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AdjustFigura aplica un delta al contador de una figura existente del
// usuario. El resultado nunca baja de cero: reducir de más deja el contador
// en 0 sin error. Devuelve el nuevo count.
func (uc *InventoryUseCase) AdjustFigura(ctx context.Context, userID string, in dto.AdjustFiguraRequest) (*dto.AdjustFiguraResponse, error) {
	if in.FiguraID == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.AdjustFiguraResponse
	err := uc.txRunner.Run(ctx, func(
		_ repository.AlbumRepository,
		_ repository.FiguraRepository,
		usuarioRepo repository.UsuarioRepository,
	) error {
		usuario, err := usuarioRepo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if usuario == nil {
			return domain.ErrUsuarioNotFound
		}
		count, ok := usuario.ApplyDelta(in.FiguraID, in.Delta)
		if !ok {
			return fmt.Errorf("%w: figura %s en el inventario", domain.ErrNotFound, in.FiguraID)
		}
		if err := usuarioRepo.Save(ctx, usuario); err != nil {
			return err
		}
		out = &dto.AdjustFiguraResponse{FiguraID: in.FiguraID, Count: count}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListAlbumes devuelve los álbumes adoptados por el usuario.
func (uc *InventoryUseCase) ListAlbumes(ctx context.Context, userID string) ([]dto.AlbumResponse, error) {
	usuario, err := uc.usuarioRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	out := make([]dto.AlbumResponse, 0, len(usuario.Albumes))
	for _, albumID := range usuario.Albumes {
		album, err := uc.albumRepo.GetByID(ctx, albumID)
		if err != nil {
			return nil, err
		}
		if album == nil {
			// Álbum borrado del catálogo; el usuario lo conserva como ID huérfano.
			continue
		}
		out = append(out, dto.AlbumResponse{
			ID: album.ID, Nombre: album.Nombre, Editorial: album.Editorial,
			Imagen: album.Imagen, Tipos: album.Tipos, CreatedAt: album.CreatedAt,
		})
	}
	return out, nil
}

// ListFiguras devuelve las entradas de inventario del usuario para un álbum,
// con la figura proyectada (code, tipo).
func (uc *InventoryUseCase) ListFiguras(ctx context.Context, userID, albumID string) ([]dto.FiguraUsuarioResponse, error) {
	album, err := uc.albumRepo.GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, fmt.Errorf("%w: álbum %s", domain.ErrNotFound, albumID)
	}
	usuario, err := uc.usuarioRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	figuras, err := uc.figuraRepo.ListByAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Figura, len(figuras))
	for _, f := range figuras {
		byID[f.ID] = f
	}
	out := make([]dto.FiguraUsuarioResponse, 0, len(usuario.Figuras))
	for _, fu := range usuario.Figuras {
		f, ok := byID[fu.FiguraID]
		if !ok {
			continue
		}
		out = append(out, dto.FiguraUsuarioResponse{
			Figura: toFiguraResponse(f),
			Count:  fu.Count,
		})
	}
	return out, nil
}
