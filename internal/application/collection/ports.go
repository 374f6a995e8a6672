package collection

import (
	"context"

	"github.com/JPostigo48/FigurAndoBackend/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Junto con UsuarioRepository.GetForUpdate
// forma la sección exclusiva por usuario: toda operación check-then-mutate
// sobre el agregado corre aquí dentro, con la fila del usuario bloqueada.
// Agregados de usuarios distintos se mutan en paralelo sin estorbarse.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		albumRepo repository.AlbumRepository,
		figuraRepo repository.FiguraRepository,
		usuarioRepo repository.UsuarioRepository,
	) error) error
}
