package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mimbres/internal/acceso"
	"mimbres/internal/apierror"
	"mimbres/internal/config"
	"mimbres/internal/dto"
	"mimbres/internal/model"
	"mimbres/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// ErrCredenciales is returned by Login for any authentication failure.
var ErrCredenciales = errors.New("credenciales invalidas")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Permisos(rol string) dto.PermisosResponse

	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	ObtenerUsuario(ctx context.Context, id int64) (*dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id int64, req dto.ActualizarUsuarioRequest) (int64, error)
	// EliminarUsuario rejects actorID deleting their own account.
	EliminarUsuario(ctx context.Context, actorID, id int64) error
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
	hash func(password []byte) ([]byte, error)
	now  func() time.Time
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{
		repo: repo,
		cfg:  cfg,
		hash: func(p []byte) ([]byte, error) { return bcrypt.GenerateFromPassword(p, bcryptCost) },
		now:  time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredenciales
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenciales
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	log.Info().Int64("usuario_id", user.ID).Str("rol", user.Rol).Msg("login")

	return &dto.LoginResponse{
		Token: token,
		User: dto.UsuarioSesion{
			ID:       user.ID,
			Username: user.Username,
			Nombre:   user.Nombre,
			Rol:      user.Rol,
		},
	}, nil
}

// generateToken signs an HS256 token with id, username, rol, iat and exp.
func (s *authService) generateToken(u *model.Usuario) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"id":       u.ID,
		"username": u.Username,
		"rol":      u.Rol,
		"iat":      now.Unix(),
		"exp":      now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) Permisos(rol string) dto.PermisosResponse {
	return dto.PermisosResponse{Rol: rol, Operaciones: acceso.Operaciones(rol)}
}

func mapUsuario(u model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:              u.ID,
		Nombre:          u.Nombre,
		ApellidoPaterno: u.ApellidoPaterno,
		ApellidoMaterno: u.ApellidoMaterno,
		Username:        u.Username,
		Rol:             u.Rol,
		FechaCreacion:   u.FechaCreacion,
	}
}

func usuarioDuplicado(username string) error {
	return apierror.Conflicto(fmt.Sprintf("El nombre de usuario '%s' ya existe.", username))
}

func rolValido(rol string) bool {
	return rol == model.RolAdmin || rol == model.RolVendedor
}

// CrearUsuario checks the username before hashing so a duplicate costs no
// bcrypt round. The unique index still backs the check under concurrency.
func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || strings.TrimSpace(req.Nombre) == "" || strings.TrimSpace(req.ApellidoPaterno) == "" {
		return nil, apierror.Validacion("Nombre, apellido paterno y username son obligatorios")
	}
	if len(req.Password) < 6 {
		return nil, apierror.Validacion("La contraseña debe tener al menos 6 caracteres")
	}
	if !rolValido(req.Rol) {
		return nil, apierror.Validacion("Rol inválido. Use ADMIN o VENDEDOR")
	}

	exists, err := s.repo.ExistsUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, usuarioDuplicado(username)
	}

	hash, err := s.hash([]byte(req.Password))
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Nombre:          strings.TrimSpace(req.Nombre),
		ApellidoPaterno: strings.TrimSpace(req.ApellidoPaterno),
		ApellidoMaterno: textoOpcional(req.ApellidoMaterno),
		Username:        username,
		PasswordHash:    string(hash),
		Rol:             req.Rol,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicado) {
			return nil, usuarioDuplicado(username)
		}
		return nil, err
	}
	resp := mapUsuario(*user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(users))
	for _, u := range users {
		out = append(out, mapUsuario(u))
	}
	return out, nil
}

func (s *authService) ObtenerUsuario(ctx context.Context, id int64) (*dto.UsuarioResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("Usuario no encontrado")
		}
		return nil, err
	}
	resp := mapUsuario(*u)
	return &resp, nil
}

// ActualizarUsuario is a partial update. A nil or empty password keeps the
// stored hash.
func (s *authService) ActualizarUsuario(ctx context.Context, id int64, req dto.ActualizarUsuarioRequest) (int64, error) {
	campos := map[string]any{}
	for _, f := range []struct {
		col string
		v   *string
	}{
		{"nombre", req.Nombre},
		{"apellido_paterno", req.ApellidoPaterno},
		{"username", req.Username},
	} {
		if err := setRequerido(campos, f.col, f.v); err != nil {
			return 0, err
		}
	}
	setTexto(campos, "apellido_materno", req.ApellidoMaterno)
	if req.Rol != nil {
		if !rolValido(*req.Rol) {
			return 0, apierror.Validacion("Rol inválido. Use ADMIN o VENDEDOR")
		}
		campos["rol"] = *req.Rol
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 6 {
			return 0, apierror.Validacion("La contraseña debe tener al menos 6 caracteres")
		}
		hash, err := s.hash([]byte(*req.Password))
		if err != nil {
			return 0, err
		}
		campos["password_hash"] = string(hash)
	}
	if len(campos) == 0 {
		return 0, nil
	}

	n, err := s.repo.Update(ctx, id, campos)
	if errors.Is(err, repository.ErrDuplicado) {
		return 0, usuarioDuplicado(fmt.Sprint(campos["username"]))
	}
	return resultadoUpdate(ctx, n, err, s.repo.Exists, id, "Usuario no encontrado")
}

func (s *authService) EliminarUsuario(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return apierror.Prohibido("No puedes eliminar tu propia cuenta.")
	}
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferenciado) {
			return apierror.Conflicto("No se puede eliminar el usuario porque tiene registros asociados (ventas/compras).")
		}
		return err
	}
	if n == 0 {
		return apierror.NoEncontrado("Usuario no encontrado")
	}
	return nil
}
