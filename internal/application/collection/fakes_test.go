package collection_test

import (
	"context"

	"github.com/JPostigo48/FigurAndoBackend/internal/domain"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/repository"
)

// fakeStore backend en memoria compartido por los repos fake. Las figuras
// se guardan en slice para que los listados tengan orden estable.
type fakeStore struct {
	albums   map[string]*entity.Album
	figuras  []*entity.Figura
	usuarios map[string]*entity.Usuario
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		albums:   make(map[string]*entity.Album),
		usuarios: make(map[string]*entity.Usuario),
	}
}

// cloneUsuario copia profunda del agregado. GetForUpdate entrega un clon y
// Save guarda un clon: una mutación solo queda si el use case llegó a Save,
// igual que con una transacción real.
func cloneUsuario(u *entity.Usuario) *entity.Usuario {
	cp := *u
	cp.Albumes = append([]string(nil), u.Albumes...)
	cp.Figuras = append([]entity.FiguraUsuario(nil), u.Figuras...)
	cp.Sets = append([]entity.SetUsuario(nil), u.Sets...)
	cp.Orders = make([]entity.Order, len(u.Orders))
	for i, o := range u.Orders {
		cp.Orders[i] = o
		cp.Orders[i].Items = append([]entity.OrderItem(nil), o.Items...)
	}
	return &cp
}

type fakeAlbumRepo struct{ s *fakeStore }

func (r *fakeAlbumRepo) Create(_ context.Context, a *entity.Album) error {
	r.s.albums[a.ID] = a
	return nil
}

func (r *fakeAlbumRepo) GetByID(_ context.Context, id string) (*entity.Album, error) {
	return r.s.albums[id], nil
}

func (r *fakeAlbumRepo) List(_ context.Context) ([]*entity.Album, error) {
	out := make([]*entity.Album, 0, len(r.s.albums))
	for _, a := range r.s.albums {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAlbumRepo) Update(_ context.Context, a *entity.Album) error {
	r.s.albums[a.ID] = a
	return nil
}

func (r *fakeAlbumRepo) Delete(_ context.Context, id string) error {
	delete(r.s.albums, id)
	return nil
}

func (r *fakeAlbumRepo) UpdateTipos(_ context.Context, albumID string, tipos []entity.TipoEntry) error {
	a, ok := r.s.albums[albumID]
	if !ok {
		return domain.ErrNotFound
	}
	a.Tipos = tipos
	return nil
}

type fakeFiguraRepo struct{ s *fakeStore }

func (r *fakeFiguraRepo) Create(_ context.Context, f *entity.Figura) error {
	r.s.figuras = append(r.s.figuras, f)
	return nil
}

func (r *fakeFiguraRepo) GetByID(_ context.Context, id string) (*entity.Figura, error) {
	for _, f := range r.s.figuras {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeFiguraRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Figura, error) {
	out := make(map[string]*entity.Figura)
	for _, f := range r.s.figuras {
		for _, id := range ids {
			if f.ID == id {
				out[f.ID] = f
			}
		}
	}
	return out, nil
}

func (r *fakeFiguraRepo) List(_ context.Context) ([]*entity.Figura, error) {
	return append([]*entity.Figura(nil), r.s.figuras...), nil
}

func (r *fakeFiguraRepo) ListByAlbum(_ context.Context, albumID string) ([]*entity.Figura, error) {
	var out []*entity.Figura
	for _, f := range r.s.figuras {
		if f.AlbumID == albumID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFiguraRepo) ListByAlbumAndTipo(_ context.Context, albumID, tipo string) ([]*entity.Figura, error) {
	var out []*entity.Figura
	for _, f := range r.s.figuras {
		if f.AlbumID == albumID && f.Tipo == tipo {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFiguraRepo) Update(_ context.Context, fig *entity.Figura) error {
	for i, f := range r.s.figuras {
		if f.ID == fig.ID {
			r.s.figuras[i] = fig
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeFiguraRepo) Delete(_ context.Context, id string) error {
	for i, f := range r.s.figuras {
		if f.ID == id {
			r.s.figuras = append(r.s.figuras[:i], r.s.figuras[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeFiguraRepo) RenameTipo(_ context.Context, albumID, oldKey, newKey string) (int64, error) {
	var n int64
	for _, f := range r.s.figuras {
		if f.AlbumID == albumID && f.Tipo == oldKey {
			f.Tipo = newKey
			n++
		}
	}
	return n, nil
}

type fakeUsuarioRepo struct{ s *fakeStore }

func (r *fakeUsuarioRepo) Create(_ context.Context, u *entity.Usuario) error {
	if _, ok := r.s.usuarios[u.ID]; ok {
		return domain.ErrNombreAlreadyExists
	}
	r.s.usuarios[u.ID] = cloneUsuario(u)
	return nil
}

func (r *fakeUsuarioRepo) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	u, ok := r.s.usuarios[id]
	if !ok {
		return nil, nil
	}
	return cloneUsuario(u), nil
}

func (r *fakeUsuarioRepo) GetByNombre(_ context.Context, nombre string) (*entity.Usuario, error) {
	for _, u := range r.s.usuarios {
		if u.Nombre == nombre {
			return cloneUsuario(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUsuarioRepo) GetForUpdate(ctx context.Context, id string) (*entity.Usuario, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeUsuarioRepo) Save(_ context.Context, u *entity.Usuario) error {
	if _, ok := r.s.usuarios[u.ID]; !ok {
		return domain.ErrUsuarioNotFound
	}
	cp := cloneUsuario(u)
	cp.Revision++
	r.s.usuarios[u.ID] = cp
	return nil
}

func (r *fakeUsuarioRepo) ListIDsByAlbum(_ context.Context, albumID string) ([]string, error) {
	var out []string
	for id, u := range r.s.usuarios {
		if u.HasAlbum(albumID) {
			out = append(out, id)
		}
	}
	return out, nil
}

// fakeTxRunner pasa los repos fake a la función; la exclusividad por usuario
// no aplica en tests secuenciales.
type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	albumRepo repository.AlbumRepository,
	figuraRepo repository.FiguraRepository,
	usuarioRepo repository.UsuarioRepository,
) error) error {
	return fn(&fakeAlbumRepo{r.s}, &fakeFiguraRepo{r.s}, &fakeUsuarioRepo{r.s})
}
