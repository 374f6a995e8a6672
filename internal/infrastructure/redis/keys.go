package redis

import "fmt"

// Claves del cache de catálogo.
const keyAlbumes = "albumes:all"

func keyAlbum(id string) string {
	return fmt.Sprintf("album:%s", id)
}

func keyFigurasByAlbum(albumID string) string {
	return fmt.Sprintf("album:%s:figuras", albumID)
}
