package repository

import (
	"context"

	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para el agregado Usuario.
// Los Get devuelven (nil, nil) cuando el usuario no existe.
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Usuario, error)
	// GetForUpdate bloquea la fila del agregado (SELECT FOR UPDATE) para que
	// check-then-mutate sea efectivamente atómico por usuario. Usar dentro
	// de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Usuario, error)
	// Save persiste los subdocumentos del agregado (álbumes, inventario,
	// sets, pedidos) y sube Revision en uno.
	Save(ctx context.Context, usuario *entity.Usuario) error
	// ListIDsByAlbum devuelve los IDs de los usuarios que poseen el álbum;
	// alimenta el fan-out de figuras y el barrido de la cascada de rename.
	ListIDsByAlbum(ctx context.Context, albumID string) ([]string, error)
}
