package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddAlbumRequest adopción de un álbum por el usuario autenticado.
type AddAlbumRequest struct {
	AlbumID string `json:"albumId"`
}

// AdjustFiguraRequest ajuste puntual del contador de una figura.
type AdjustFiguraRequest struct {
	FiguraID string `json:"figuraId"`
	Delta    int    `json:"delta"`
}

// AdjustFiguraResponse el contador resultante tras el ajuste (con piso en 0).
type AdjustFiguraResponse struct {
	FiguraID string `json:"figuraId"`
	Count    int    `json:"count"`
}

// FiguraUsuarioResponse una entrada de inventario con la figura proyectada.
type FiguraUsuarioResponse struct {
	Figura FiguraResponse `json:"figura"`
	Count  int            `json:"count"`
}

// CreateSetRequest armar un set de un tipo dentro de un álbum.
type CreateSetRequest struct {
	AlbumID string `json:"albumId"`
	Tipo    string `json:"tipo"`
}

// SetResponse contador de sets completados de un tipo.
type SetResponse struct {
	Tipo  string `json:"tipo"`
	Count int    `json:"count"`
}

// UsuarioResponse el agregado del usuario proyectado; CreateSet y AddAlbum
// responden con él completo para que el cliente refresque su estado.
type UsuarioResponse struct {
	ID      string                  `json:"id"`
	Nombre  string                  `json:"nombre"`
	Rol     string                  `json:"rol"`
	Albumes []string                `json:"albumesUsuario"`
	Figuras []FiguraUsuarioEntry    `json:"figurasUsuario"`
	Sets    []SetUsuarioEntry       `json:"setsUsuario"`
}

// FiguraUsuarioEntry entrada cruda de inventario dentro de UsuarioResponse.
type FiguraUsuarioEntry struct {
	FiguraID string `json:"figura"`
	Tipo     string `json:"tipo,omitempty"`
	Count    int    `json:"count"`
}

// SetUsuarioEntry contador de sets dentro de UsuarioResponse.
type SetUsuarioEntry struct {
	AlbumID string `json:"album"`
	Tipo    string `json:"tipo"`
	Count   int    `json:"count"`
}

// OrderItemRequest línea de pedido entrante.
type OrderItemRequest struct {
	FiguraID string `json:"figuraId"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest alta de un pedido contra el stock del usuario.
// Total viene dado por el cliente (no se calcula aquí) y debe ser ≥ 0.
type CreateOrderRequest struct {
	AlbumID  string             `json:"albumId"`
	Customer string             `json:"customer"`
	Items    []OrderItemRequest `json:"items"`
	Total    decimal.Decimal    `json:"total"`
}

// OrderItemResponse línea de pedido con la figura proyectada.
type OrderItemResponse struct {
	Figura   FiguraResponse `json:"figura"`
	Quantity int            `json:"quantity"`
}

// OrderResponse proyección de un pedido para el listado.
type OrderResponse struct {
	ID        string              `json:"id"`
	Customer  string              `json:"customer"`
	Items     []OrderItemResponse `json:"items"`
	Total     decimal.Decimal     `json:"total"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}
