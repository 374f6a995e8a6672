package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JPostigo48/FigurAndoBackend/internal/application/dto"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/repository"
	"github.com/JPostigo48/FigurAndoBackend/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea la contraseña con bcrypt y persiste.
// Devuelve ErrNombreAlreadyExists si el nombre ya está tomado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UsuarioBrief, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if len(nombre) < 3 || len(in.Contra) < 6 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.usuarioRepo.GetByNombre(ctx, nombre)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrNombreAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Contra), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	usuario := &entity.Usuario{
		ID:         uuid.New().String(),
		Nombre:     nombre,
		ContraHash: string(hash),
		Rol:        entity.RolUsuario,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.usuarioRepo.Create(ctx, usuario); err != nil {
		return nil, err
	}
	return &dto.UsuarioBrief{ID: usuario.ID, Nombre: usuario.Nombre, Rol: usuario.Rol}, nil
}

// Login verifica nombre/contraseña, genera el JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.GetByNombre(ctx, strings.TrimSpace(in.Nombre))
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.ContraHash), []byte(in.Contra)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.Nombre, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: dto.UsuarioBrief{ID: usuario.ID, Nombre: usuario.Nombre, Rol: usuario.Rol},
	}, nil
}
