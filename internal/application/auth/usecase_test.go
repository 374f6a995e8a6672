package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JPostigo48/FigurAndoBackend/internal/application/auth"
	"github.com/JPostigo48/FigurAndoBackend/internal/application/dto"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
	pkgjwt "github.com/JPostigo48/FigurAndoBackend/pkg/jwt"
)

// memUsuarioRepo implementa solo lo que auth usa; el resto no aplica.
type memUsuarioRepo struct {
	byNombre map[string]*entity.Usuario
}

func newMemUsuarioRepo() *memUsuarioRepo {
	return &memUsuarioRepo{byNombre: make(map[string]*entity.Usuario)}
}

func (r *memUsuarioRepo) Create(_ context.Context, u *entity.Usuario) error {
	if _, ok := r.byNombre[u.Nombre]; ok {
		return domain.ErrNombreAlreadyExists
	}
	r.byNombre[u.Nombre] = u
	return nil
}

func (r *memUsuarioRepo) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	for _, u := range r.byNombre {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsuarioRepo) GetByNombre(_ context.Context, nombre string) (*entity.Usuario, error) {
	return r.byNombre[nombre], nil
}

func (r *memUsuarioRepo) GetForUpdate(ctx context.Context, id string) (*entity.Usuario, error) {
	return r.GetByID(ctx, id)
}

func (r *memUsuarioRepo) Save(_ context.Context, u *entity.Usuario) error {
	r.byNombre[u.Nombre] = u
	return nil
}

func (r *memUsuarioRepo) ListIDsByAlbum(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func newAuthUC(repo *memUsuarioRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 480,
		Issuer:     "figurando-test",
	})
}

func TestRegister_CreaUsuarioConRolPorDefecto(t *testing.T) {
	repo := newMemUsuarioRepo()
	uc := newAuthUC(repo)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{Nombre: "  ana  ", Contra: "secreta1"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "ana", out.Nombre, "el nombre se guarda sin espacios")
	assert.Equal(t, entity.RolUsuario, out.Rol)

	stored := repo.byNombre["ana"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta1", stored.ContraHash, "la contraseña nunca se guarda en claro")
}

func TestRegister_Validaciones(t *testing.T) {
	uc := newAuthUC(newMemUsuarioRepo())
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Nombre: "ab", Contra: "secreta1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre demasiado corto")

	_, err = uc.Register(ctx, dto.RegisterRequest{Nombre: "ana", Contra: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "contraseña demasiado corta")
}

func TestRegister_NombreTomado(t *testing.T) {
	repo := newMemUsuarioRepo()
	uc := newAuthUC(repo)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Nombre: "ana", Contra: "secreta1"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Nombre: "ana", Contra: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrNombreAlreadyExists)
}

func TestLogin_TokenConClaims(t *testing.T) {
	repo := newMemUsuarioRepo()
	uc := newAuthUC(repo)
	ctx := context.Background()

	reg, err := uc.Register(ctx, dto.RegisterRequest{Nombre: "ana", Contra: "secreta1"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Nombre: "ana", Contra: "secreta1"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, reg.ID, out.Usuario.ID)

	userID, nombre, rol, err := pkgjwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, "ana", nombre)
	assert.Equal(t, entity.RolUsuario, rol)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	repo := newMemUsuarioRepo()
	uc := newAuthUC(repo)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Nombre: "ana", Contra: "secreta1"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Nombre: "ana", Contra: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Nombre: "nadie", Contra: "secreta1"})
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)
}
