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

// Usuarios barridos en paralelo durante la cascada de rename / fan-out.
const sweepConcurrency = 8

// AlbumUseCase CRUD de álbumes y el registro de tipos (alta, rename con
// cascada, baja). El rename abarca tres colecciones independientes y NO es
// transaccional entre ellas: el catálogo commitea primero y las cascadas
// sobre figuras y usuarios se aplican después, de forma idempotente, así
// reintentar el mismo rename tras un fallo parcial converge sin duplicar.
type AlbumUseCase struct {
	albumRepo   repository.AlbumRepository
	figuraRepo  repository.FiguraRepository
	usuarioRepo repository.UsuarioRepository
	txRunner    TxRunner
	cache       CatalogCache
	log         *logger.Logger
}

// NewAlbumUseCase construye el caso de uso.
func NewAlbumUseCase(
	albumRepo repository.AlbumRepository,
	figuraRepo repository.FiguraRepository,
	usuarioRepo repository.UsuarioRepository,
	txRunner TxRunner,
	cache CatalogCache,
	log *logger.Logger,
) *AlbumUseCase {
	return &AlbumUseCase{
		albumRepo:   albumRepo,
		figuraRepo:  figuraRepo,
		usuarioRepo: usuarioRepo,
		txRunner:    txRunner,
		cache:       cache,
		log:         log,
	}
}

// List devuelve todos los álbumes (vía cache de lectura).
func (uc *AlbumUseCase) List(ctx context.Context) ([]dto.AlbumResponse, error) {
	albumes, err := uc.cache.Albumes(ctx, func(ctx context.Context) ([]*entity.Album, error) {
		return uc.albumRepo.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlbumResponse, 0, len(albumes))
	for _, a := range albumes {
		out = append(out, toAlbumResponse(a))
	}
	return out, nil
}

// GetByID devuelve un álbum por ID (vía cache de lectura).
func (uc *AlbumUseCase) GetByID(ctx context.Context, id string) (*dto.AlbumResponse, error) {
	album, err := uc.getAlbum(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toAlbumResponse(album)
	return &resp, nil
}

// Create crea un álbum. nombre, editorial e imagen son obligatorios;
// las keys del catálogo inicial deben ser únicas.
func (uc *AlbumUseCase) Create(ctx context.Context, in dto.CreateAlbumRequest) (*dto.AlbumResponse, error) {
	if in.Nombre == "" || in.Editorial == "" || in.Imagen == "" {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(in.Tipos))
	for _, t := range in.Tipos {
		if t.Key == "" {
			return nil, domain.ErrInvalidInput
		}
		if _, dup := seen[t.Key]; dup {
			return nil, fmt.Errorf("%w: tipo '%s' duplicado", domain.ErrConflict, t.Key)
		}
		seen[t.Key] = struct{}{}
	}
	now := time.Now()
	album := &entity.Album{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Editorial: in.Editorial,
		Imagen:    in.Imagen,
		Tipos:     in.Tipos,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.albumRepo.Create(ctx, album); err != nil {
		return nil, err
	}
	_ = uc.cache.InvalidateAlbumes(ctx)
	resp := toAlbumResponse(album)
	return &resp, nil
}

// Update actualiza los campos descriptivos del álbum.
func (uc *AlbumUseCase) Update(ctx context.Context, id string, in dto.UpdateAlbumRequest) (*dto.AlbumResponse, error) {
	album, err := uc.getAlbum(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Nombre != nil {
		album.Nombre = *in.Nombre
	}
	if in.Editorial != nil {
		album.Editorial = *in.Editorial
	}
	if in.Imagen != nil {
		album.Imagen = *in.Imagen
	}
	album.UpdatedAt = time.Now()
	if err := uc.albumRepo.Update(ctx, album); err != nil {
		return nil, err
	}
	_ = uc.cache.InvalidateAlbum(ctx, id)
	resp := toAlbumResponse(album)
	return &resp, nil
}

// Delete elimina el álbum. Las figuras y las referencias de usuarios quedan
// huérfanas a propósito (igual que el borrado de tipos).
func (uc *AlbumUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.getAlbum(ctx, id); err != nil {
		return err
	}
	if err := uc.albumRepo.Delete(ctx, id); err != nil {
		return err
	}
	return uc.cache.InvalidateAlbum(ctx, id)
}

// AddTipo agrega una entrada al catálogo. Falla con ErrConflict si la key
// ya existe en el álbum.
func (uc *AlbumUseCase) AddTipo(ctx context.Context, albumID string, in dto.AddTipoRequest) ([]entity.TipoEntry, error) {
	if in.Key == "" {
		return nil, domain.ErrInvalidInput
	}
	album, err := uc.getAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if album.HasTipo(in.Key) {
		return nil, fmt.Errorf("%w: el tipo '%s' ya existe", domain.ErrConflict, in.Key)
	}
	album.Tipos = append(album.Tipos, entity.TipoEntry{Key: in.Key, Label: in.Label})
	if err := uc.albumRepo.UpdateTipos(ctx, albumID, album.Tipos); err != nil {
		return nil, err
	}
	_ = uc.cache.InvalidateAlbum(ctx, albumID)
	return album.Tipos, nil
}

// RenameTipo renombra una entrada del catálogo y cascada el cambio de key a
// las figuras del álbum y a los subdocumentos de los usuarios. Pasos, en
// este orden y sin transacción que los abarque:
//
//  1. catálogo: la entrada pasa a newKey/label (commit inmediato)
//  2. figuras: UPDATE con filtro tipo = oldKey (vacío en un reintento)
//  3. usuarios: barrido con una tx por usuario, reetiquetando inventario
//     y sets por pertenencia al conjunto de figuras renombradas
//
// Con newKey vacío o igual a oldKey solo cambia el label y no hay cascada.
func (uc *AlbumUseCase) RenameTipo(ctx context.Context, albumID, oldKey string, in dto.RenameTipoRequest) ([]entity.TipoEntry, error) {
	album, err := uc.getAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	idx := album.FindTipo(oldKey)
	if idx < 0 {
		// Reintento de un rename cuyo catálogo ya commiteó: se retoma la
		// cascada, que con los filtros vacíos converge sin duplicar nada.
		if in.NewKey != "" && in.NewKey != oldKey && album.HasTipo(in.NewKey) {
			if err := uc.cascadeRename(ctx, albumID, oldKey, in.NewKey); err != nil {
				return nil, fmt.Errorf("cascada de rename '%s' -> '%s': %w", oldKey, in.NewKey, err)
			}
			return album.Tipos, nil
		}
		return nil, fmt.Errorf("%w: tipo '%s'", domain.ErrNotFound, oldKey)
	}
	newKey := in.NewKey
	if newKey == "" {
		newKey = oldKey
	}
	if newKey != oldKey && album.HasTipo(newKey) {
		return nil, fmt.Errorf("%w: el tipo '%s' ya existe", domain.ErrConflict, newKey)
	}
	album.Tipos[idx].Key = newKey
	if in.Label != "" {
		album.Tipos[idx].Label = in.Label
	}
	if err := uc.albumRepo.UpdateTipos(ctx, albumID, album.Tipos); err != nil {
		return nil, err
	}
	_ = uc.cache.InvalidateAlbum(ctx, albumID)

	if newKey != oldKey {
		if err := uc.cascadeRename(ctx, albumID, oldKey, newKey); err != nil {
			// El catálogo ya quedó en newKey; el reintento del mismo rename
			// retoma la cascada donde falló.
			return nil, fmt.Errorf("cascada de rename '%s' -> '%s': %w", oldKey, newKey, err)
		}
	}
	return album.Tipos, nil
}

func (uc *AlbumUseCase) cascadeRename(ctx context.Context, albumID, oldKey, newKey string) error {
	renamed, err := uc.figuraRepo.RenameTipo(ctx, albumID, oldKey, newKey)
	if err != nil {
		return err
	}
	uc.log.Info().
		Str("album", albumID).
		Str("oldKey", oldKey).
		Str("newKey", newKey).
		Int64("figuras", renamed).
		Msg("cascada de rename: figuras reetiquetadas")

	// Conjunto post-update: en un reintento las figuras ya traen newKey,
	// así el barrido de usuarios sigue encontrando las mismas entradas.
	figuras, err := uc.figuraRepo.ListByAlbumAndTipo(ctx, albumID, newKey)
	if err != nil {
		return err
	}
	idSet := make(map[string]struct{}, len(figuras))
	for _, f := range figuras {
		idSet[f.ID] = struct{}{}
	}

	userIDs, err := uc.usuarioRepo.ListIDsByAlbum(ctx, albumID)
	if err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)
	for _, userID := range userIDs {
		g.Go(func() error {
			return uc.renameUsuarioTags(gctx, userID, albumID, idSet, oldKey, newKey)
		})
	}
	return g.Wait()
}

// renameUsuarioTags reescribe los tags de un usuario bajo su sección
// exclusiva. El filtro es por figura renombrada, no por el tag redundante,
// así un tag viejo o ausente no esconde la entrada y se corrige de paso.
func (uc *AlbumUseCase) renameUsuarioTags(ctx context.Context, userID, albumID string, idSet map[string]struct{}, oldKey, newKey string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.AlbumRepository,
		_ repository.FiguraRepository,
		usuarioRepo repository.UsuarioRepository,
	) error {
		usuario, err := usuarioRepo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if usuario == nil {
			return nil
		}
		changed := false
		for i := range usuario.Figuras {
			if _, ok := idSet[usuario.Figuras[i].FiguraID]; ok && usuario.Figuras[i].Tipo != newKey {
				usuario.Figuras[i].Tipo = newKey
				changed = true
			}
		}
		for i := range usuario.Sets {
			if usuario.Sets[i].AlbumID == albumID && usuario.Sets[i].Tipo == oldKey {
				usuario.Sets[i].Tipo = newKey
				changed = true
			}
		}
		if !changed {
			return nil
		}
		return usuarioRepo.Save(ctx, usuario)
	})
}

// DeleteTipo elimina solo la entrada del catálogo. Figuras e inventarios
// que referencien la key quedan huérfanos a propósito: no hay cascada de
// borrado.
func (uc *AlbumUseCase) DeleteTipo(ctx context.Context, albumID, key string) ([]entity.TipoEntry, error) {
	album, err := uc.getAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	idx := album.FindTipo(key)
	if idx < 0 {
		return nil, fmt.Errorf("%w: tipo '%s'", domain.ErrNotFound, key)
	}
	album.Tipos = append(album.Tipos[:idx], album.Tipos[idx+1:]...)
	if err := uc.albumRepo.UpdateTipos(ctx, albumID, album.Tipos); err != nil {
		return nil, err
	}
	_ = uc.cache.InvalidateAlbum(ctx, albumID)
	return album.Tipos, nil
}

func (uc *AlbumUseCase) getAlbum(ctx context.Context, id string) (*entity.Album, error) {
	return uc.cache.Album(ctx, id, func(ctx context.Context) (*entity.Album, error) {
		album, err := uc.albumRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if album == nil {
			return nil, fmt.Errorf("%w: álbum %s", domain.ErrNotFound, id)
		}
		return album, nil
	})
}

func toAlbumResponse(a *entity.Album) dto.AlbumResponse {
	return dto.AlbumResponse{
		ID:        a.ID,
		Nombre:    a.Nombre,
		Editorial: a.Editorial,
		Imagen:    a.Imagen,
		Tipos:     a.Tipos,
		CreatedAt: a.CreatedAt,
	}
}
