package service

import (
	"context"
	"testing"

	"github.com/Henry-56/ferreteria/internal/config"
	"github.com/Henry-56/ferreteria/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthEnv() (AuthService, *stubUsuarioRepo) {
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func crearUsuarioTest(t *testing.T, svc AuthService, username, password, rol string) dto.UsuarioResponse {
	t.Helper()
	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username:       username,
		NombreCompleto: "Usuario de Prueba",
		Password:       password,
		Rol:            rol,
	})
	require.NoError(t, err)
	return *resp
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newAuthEnv()
	crearUsuarioTest(t, svc, "vendedor1", "secreto123", "vendedor")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "vendedor1",
		Password: "secreto123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "vendedor1", resp.User.Username)
	assert.Equal(t, "vendedor", resp.User.Rol)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	svc, _ := newAuthEnv()
	crearUsuarioTest(t, svc, "cajero1", "secreto123", "cajero")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "cajero1",
		Password: "otra-cosa",
	})
	require.EqualError(t, err, "credenciales invalidas")
}

func TestLogin_UsuarioNoExiste(t *testing.T) {
	svc, _ := newAuthEnv()

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "fantasma",
		Password: "secreto123",
	})
	require.EqualError(t, err, "credenciales invalidas")
}

func TestLogin_UsuarioDesactivado(t *testing.T) {
	svc, _ := newAuthEnv()
	user := crearUsuarioTest(t, svc, "exempleado", "secreto123", "vendedor")
	require.NoError(t, svc.DesactivarUsuario(context.Background(), uuid.MustParse(user.ID)))

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "exempleado",
		Password: "secreto123",
	})
	require.EqualError(t, err, "credenciales invalidas")
}

func TestRefresh_Success(t *testing.T) {
	svc, _ := newAuthEnv()
	crearUsuarioTest(t, svc, "admin1", "secreto123", "admin")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "admin1",
		Password: "secreto123",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "admin1", refreshed.User.Username)
}

func TestRefresh_TokenInvalido(t *testing.T) {
	svc, _ := newAuthEnv()

	_, err := svc.Refresh(context.Background(), "no.es.un-jwt")
	require.Error(t, err)
}

func TestCrearUsuario_UsernameDuplicado(t *testing.T) {
	svc, _ := newAuthEnv()
	crearUsuarioTest(t, svc, "repetido", "secreto123", "vendedor")

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username:       "repetido",
		NombreCompleto: "Otro",
		Password:       "secreto456",
		Rol:            "cajero",
	})
	require.Error(t, err)
}

func TestActualizarUsuario_CambiaRolYPassword(t *testing.T) {
	svc, _ := newAuthEnv()
	user := crearUsuarioTest(t, svc, "promovido", "secreto123", "cajero")

	resp, err := svc.ActualizarUsuario(context.Background(), uuid.MustParse(user.ID), dto.ActualizarUsuarioRequest{
		Rol:      "supervisor",
		Password: "nuevo-secreto",
	})
	require.NoError(t, err)
	assert.Equal(t, "supervisor", resp.Rol)

	// Old password no longer works, new one does
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "promovido", Password: "secreto123"})
	require.Error(t, err)
	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "promovido", Password: "nuevo-secreto"})
	require.NoError(t, err)
	assert.Equal(t, "supervisor", login.User.Rol)
}

func TestListarUsuarios_ExcluyeInactivosPorDefecto(t *testing.T) {
	svc, _ := newAuthEnv()
	crearUsuarioTest(t, svc, "activo1", "secreto123", "vendedor")
	inactivo := crearUsuarioTest(t, svc, "inactivo1", "secreto123", "vendedor")
	require.NoError(t, svc.DesactivarUsuario(context.Background(), uuid.MustParse(inactivo.ID)))

	activos, err := svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, activos, 1)
	assert.Equal(t, "activo1", activos[0].Username)

	todos, err := svc.ListarUsuarios(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}
