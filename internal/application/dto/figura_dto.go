package dto

// CreateFiguraRequest alta de una figura en un álbum.
type CreateFiguraRequest struct {
	AlbumID string `json:"albumId"`
	Code    string `json:"code"`
	Tipo    string `json:"tipo"`
}

// UpdateFiguraRequest campos opcionales a actualizar (sin cascada).
type UpdateFiguraRequest struct {
	Code *string `json:"code"`
	Tipo *string `json:"tipo"`
}

// FiguraResponse proyección de una figura.
type FiguraResponse struct {
	ID      string `json:"id"`
	AlbumID string `json:"albumId"`
	Code    string `json:"code"`
	Tipo    string `json:"tipo"`
}
