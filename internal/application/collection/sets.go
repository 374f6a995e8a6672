package collection

import (
	"context"
	"fmt"

	"github.com/JPostigo48/FigurAndoBackend/internal/application/dto"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/repository"
)

// SetsUseCase arma sets completos: convierte una unidad de cada figura de un
// tipo en un set contado, de forma todo-o-nada.
type SetsUseCase struct {
	txRunner    TxRunner
	usuarioRepo repository.UsuarioRepository
}

// NewSetsUseCase construye el caso de uso.
func NewSetsUseCase(txRunner TxRunner, usuarioRepo repository.UsuarioRepository) *SetsUseCase {
	return &SetsUseCase{txRunner: txRunner, usuarioRepo: usuarioRepo}
}

// CreateSet arma un set del (álbum, tipo): exige count ≥ 1 en TODAS las
// figuras de ese tipo, evaluado completo antes de tocar nada. Si el álbum no
// tiene figuras del tipo falla con ErrInvalidTipo; si alguna figura falta,
// con ErrInsufficientStock nombrando el primer faltante y sin mutación.
// En éxito descuenta 1 de cada entrada y sube (o crea en 1) el contador
// de sets. Devuelve el agregado actualizado.
func (uc *SetsUseCase) CreateSet(ctx context.Context, userID string, in dto.CreateSetRequest) (*dto.UsuarioResponse, error) {
	if in.AlbumID == "" || in.Tipo == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.UsuarioResponse
	err := uc.txRunner.Run(ctx, func(
		albumRepo repository.AlbumRepository,
		figuraRepo repository.FiguraRepository,
		usuarioRepo repository.UsuarioRepository,
	) error {
		album, err := albumRepo.GetByID(ctx, in.AlbumID)
		if err != nil {
			return err
		}
		if album == nil {
			return fmt.Errorf("%w: álbum %s", domain.ErrNotFound, in.AlbumID)
		}
		figuras, err := figuraRepo.ListByAlbumAndTipo(ctx, in.AlbumID, in.Tipo)
		if err != nil {
			return err
		}
		if len(figuras) == 0 {
			return fmt.Errorf("%w: '%s' en el álbum '%s'", domain.ErrInvalidTipo, in.Tipo, album.Nombre)
		}
		usuario, err := usuarioRepo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if usuario == nil {
			return domain.ErrUsuarioNotFound
		}
		// Chequeo completo antes de cualquier decremento.
		for _, f := range figuras {
			entry := usuario.FindFigura(f.ID)
			if entry == nil || entry.Count < 1 {
				return fmt.Errorf("%w: falta la figura %s", domain.ErrInsufficientStock, f.Code)
			}
		}
		for _, f := range figuras {
			usuario.FindFigura(f.ID).Count--
		}
		if set := usuario.FindSet(in.AlbumID, in.Tipo); set != nil {
			set.Count++
		} else {
			usuario.Sets = append(usuario.Sets, entity.SetUsuario{
				AlbumID: in.AlbumID, Tipo: in.Tipo, Count: 1,
			})
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

// ListSets devuelve los pares {tipo, count} del usuario para un álbum.
func (uc *SetsUseCase) ListSets(ctx context.Context, userID, albumID string) ([]dto.SetResponse, error) {
	usuario, err := uc.usuarioRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	out := make([]dto.SetResponse, 0, len(usuario.Sets))
	for _, s := range usuario.Sets {
		if s.AlbumID == albumID {
			out = append(out, dto.SetResponse{Tipo: s.Tipo, Count: s.Count})
		}
	}
	return out, nil
}
