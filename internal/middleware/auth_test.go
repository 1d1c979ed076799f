package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Henry-56/ferreteria/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func firmarToken(t *testing.T, rol string, expiraEn time.Duration) string {
	t.Helper()
	claims := JWTClaims{
		UserID:   "3f0c8e1a-0000-0000-0000-000000000001",
		Username: "tester",
		Rol:      rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiraEn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func routerProtegido(perm auth.Permission) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authz := auth.NewRolAuthorizer()
	r.GET("/protegido", JWTAuth(testSecret), RequirePermission(authz, perm), func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"rol": claims.Rol})
	})
	return r
}

func TestJWTAuth_SinToken(t *testing.T) {
	r := routerProtegido(auth.PermVentasCrear)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_TokenValido(t *testing.T) {
	r := routerProtegido(auth.PermVentasCrear)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+firmarToken(t, auth.RolVendedor, time.Hour))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "vendedor")
}

func TestJWTAuth_TokenExpirado(t *testing.T) {
	r := routerProtegido(auth.PermVentasCrear)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+firmarToken(t, auth.RolVendedor, -time.Minute))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_FirmaIncorrecta(t *testing.T) {
	r := routerProtegido(auth.PermVentasCrear)

	claims := JWTClaims{Rol: auth.RolAdmin, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("otro-secreto"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePermission_RolSinPermiso(t *testing.T) {
	// cajero cannot void sales
	r := routerProtegido(auth.PermVentasAnular)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+firmarToken(t, auth.RolCajero, time.Hour))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermission_AdminImplicito(t *testing.T) {
	r := routerProtegido(auth.PermUsuariosAdministrar)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+firmarToken(t, auth.RolAdmin, time.Hour))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
