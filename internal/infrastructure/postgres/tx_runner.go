package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JPostigo48/FigurAndoBackend/internal/application/collection"
	"github.com/JPostigo48/FigurAndoBackend/internal/application/usecase"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/repository"
)

// Ensure TxRunner implements collection.TxRunner and usecase.TxRunner.
var _ collection.TxRunner = (*TxRunner)(nil)
var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Dentro de fn, UsuarioRepo.GetForUpdate bloquea la fila
// del agregado, formando la sección exclusiva por usuario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	albumRepo repository.AlbumRepository,
	figuraRepo repository.FiguraRepository,
	usuarioRepo repository.UsuarioRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	albumRepo := NewAlbumRepository(tx)
	figuraRepo := NewFiguraRepository(tx)
	usuarioRepo := NewUsuarioRepository(tx)

	if err := fn(albumRepo, figuraRepo, usuarioRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
