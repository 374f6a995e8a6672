package dto

import (
	"time"

	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
)

// CreateAlbumRequest datos de alta de un álbum. Tipos es opcional;
// cada key debe ser única dentro del álbum.
type CreateAlbumRequest struct {
	Nombre    string             `json:"nombre"`
	Editorial string             `json:"editorial"`
	Imagen    string             `json:"imagen"`
	Tipos     []entity.TipoEntry `json:"tipos"`
}

// UpdateAlbumRequest campos opcionales a actualizar.
type UpdateAlbumRequest struct {
	Nombre    *string `json:"nombre"`
	Editorial *string `json:"editorial"`
	Imagen    *string `json:"imagen"`
}

// AlbumResponse proyección de un álbum con su catálogo de tipos.
type AlbumResponse struct {
	ID        string             `json:"id"`
	Nombre    string             `json:"nombre"`
	Editorial string             `json:"editorial"`
	Imagen    string             `json:"imagen"`
	Tipos     []entity.TipoEntry `json:"tipos"`
	CreatedAt time.Time          `json:"createdAt"`
}

// AddTipoRequest nueva entrada del catálogo de tipos.
type AddTipoRequest struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// RenameTipoRequest rename de una entrada del catálogo. NewKey y Label son
// opcionales; con NewKey vacío solo cambia el label (sin cascada).
type RenameTipoRequest struct {
	NewKey string `json:"newKey"`
	Label  string `json:"label"`
}
