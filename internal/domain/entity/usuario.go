package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para Usuario.
const (
	RolUsuario = "usuario"
	RolAdmin   = "admin"
)

// Estados de un pedido. pending es el inicial; delivered y cancelled son
// terminales y no admiten más transiciones.
const (
	OrderPending   = "pending"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// FiguraUsuario el stock de una figura en manos del usuario (subdocumento).
// Tipo se guarda de forma redundante para las respuestas al cliente; la
// cascada de rename lo reescribe por pertenencia al conjunto de figuras
// renombradas, nunca filtra por él.
type FiguraUsuario struct {
	FiguraID string `json:"figura"`
	Tipo     string `json:"tipo,omitempty"`
	Count    int    `json:"count"`
}

// SetUsuario cantidad de sets completados de un (álbum, tipo).
type SetUsuario struct {
	AlbumID string `json:"album"`
	Tipo    string `json:"tipo"`
	Count   int    `json:"count"`
}

// OrderItem una línea de pedido: figura y cantidad (≥ 1).
type OrderItem struct {
	FiguraID string `json:"figura"`
	Quantity int    `json:"quantity"`
}

// Order un pedido registrado contra el stock del usuario. El stock se
// reserva (descuenta) al crearlo; delivered no toca stock y cancelled
// lo repone.
type Order struct {
	ID        string          `json:"id"`
	AlbumID   string          `json:"album"`
	Customer  string          `json:"customer"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Terminal indica si el pedido está en un estado final.
func (o *Order) Terminal() bool {
	return o.Status == OrderDelivered || o.Status == OrderCancelled
}

// Usuario el agregado raíz de un coleccionista: credenciales, álbumes que
// posee, inventario de figuras, sets completados y pedidos. Los subdocumentos
// se persisten embebidos; el agregado completo es la unidad de consistencia
// y Revision sube en cada guardado.
type Usuario struct {
	ID         string
	Nombre     string
	ContraHash string
	Rol        string
	Albumes    []string
	Figuras    []FiguraUsuario
	Sets       []SetUsuario
	Orders     []Order
	Revision   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasAlbum indica si el usuario ya adoptó el álbum.
func (u *Usuario) HasAlbum(albumID string) bool {
	for _, id := range u.Albumes {
		if id == albumID {
			return true
		}
	}
	return false
}

// AddAlbum agrega el álbum al usuario si aún no lo tiene (semántica addToSet).
func (u *Usuario) AddAlbum(albumID string) {
	if !u.HasAlbum(albumID) {
		u.Albumes = append(u.Albumes, albumID)
	}
}

// FindFigura devuelve un puntero a la entrada de inventario de esa figura,
// o nil si el usuario no la tiene.
func (u *Usuario) FindFigura(figuraID string) *FiguraUsuario {
	for i := range u.Figuras {
		if u.Figuras[i].FiguraID == figuraID {
			return &u.Figuras[i]
		}
	}
	return nil
}

// RemoveFigura elimina la entrada de inventario de esa figura si existe.
// No-op si no está.
func (u *Usuario) RemoveFigura(figuraID string) {
	for i := range u.Figuras {
		if u.Figuras[i].FiguraID == figuraID {
			u.Figuras = append(u.Figuras[:i], u.Figuras[i+1:]...)
			return
		}
	}
}

// ApplyDelta ajusta el contador de una entrada existente con piso en cero:
// reducir por debajo de 0 deja 0, nunca un negativo. Devuelve el nuevo
// count y false si la entrada no existe.
func (u *Usuario) ApplyDelta(figuraID string, delta int) (int, bool) {
	entry := u.FindFigura(figuraID)
	if entry == nil {
		return 0, false
	}
	entry.Count += delta
	if entry.Count < 0 {
		entry.Count = 0
	}
	return entry.Count, true
}

// FindSet devuelve un puntero al contador de sets de (álbum, tipo), o nil.
func (u *Usuario) FindSet(albumID, tipo string) *SetUsuario {
	for i := range u.Sets {
		if u.Sets[i].AlbumID == albumID && u.Sets[i].Tipo == tipo {
			return &u.Sets[i]
		}
	}
	return nil
}

// FindOrder devuelve un puntero al pedido con ese ID, o nil.
func (u *Usuario) FindOrder(orderID string) *Order {
	for i := range u.Orders {
		if u.Orders[i].ID == orderID {
			return &u.Orders[i]
		}
	}
	return nil
}
