package entity

import "time"

// Figura una lámina/cromo de un álbum, etiquetada con un tipo del catálogo.
// AlbumID es FK explícita; la relación nunca se hace por nombre de álbum.
type Figura struct {
	ID        string
	AlbumID   string
	Code      string
	Tipo      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
