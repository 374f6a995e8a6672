package collection

import (
	"github.com/JPostigo48/FigurAndoBackend/internal/application/dto"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
)

func toFiguraResponse(f *entity.Figura) dto.FiguraResponse {
	return dto.FiguraResponse{ID: f.ID, AlbumID: f.AlbumID, Code: f.Code, Tipo: f.Tipo}
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	out := &dto.UsuarioResponse{
		ID:      u.ID,
		Nombre:  u.Nombre,
		Rol:     u.Rol,
		Albumes: u.Albumes,
		Figuras: make([]dto.FiguraUsuarioEntry, 0, len(u.Figuras)),
		Sets:    make([]dto.SetUsuarioEntry, 0, len(u.Sets)),
	}
	for _, fu := range u.Figuras {
		out.Figuras = append(out.Figuras, dto.FiguraUsuarioEntry{
			FiguraID: fu.FiguraID, Tipo: fu.Tipo, Count: fu.Count,
		})
	}
	for _, s := range u.Sets {
		out.Sets = append(out.Sets, dto.SetUsuarioEntry{
			AlbumID: s.AlbumID, Tipo: s.Tipo, Count: s.Count,
		})
	}
	return out
}
