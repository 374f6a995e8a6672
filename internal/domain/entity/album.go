package entity

import "time"

// TipoEntry una entrada del catálogo de tipos de un álbum.
// Key es único dentro del álbum; Label es el texto que ve el cliente.
type TipoEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Album representa un álbum coleccionable con su catálogo de tipos.
// Las figuras del álbum viven en su propia colección y referencian este ID.
type Album struct {
	ID        string
	Nombre    string
	Editorial string
	Imagen    string
	Tipos     []TipoEntry
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FindTipo devuelve el índice de la entrada con esa key, o -1 si no existe.
func (a *Album) FindTipo(key string) int {
	for i, t := range a.Tipos {
		if t.Key == key {
			return i
		}
	}
	return -1
}

// HasTipo indica si la key existe en el catálogo.
func (a *Album) HasTipo(key string) bool {
	return a.FindTipo(key) >= 0
}
