package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Henry-56/ferreteria/internal/apierror"

	"github.com/gin-gonic/gin"
)

// limitador counts requests per client IP over fixed windows. A single mutex
// guards the map; contention is negligible at the request rates a POS serves.
type limitador struct {
	mu      sync.Mutex
	limite  int
	ventana time.Duration
	porIP   map[string]*contadorIP
	barrido time.Time
}

type contadorIP struct {
	visto  int
	expira time.Time
}

func newLimitador(limite int, ventana time.Duration) *limitador {
	return &limitador{
		limite:  limite,
		ventana: ventana,
		porIP:   make(map[string]*contadorIP),
		barrido: time.Now(),
	}
}

// permitir registers one hit for ip and reports whether it stays under the
// limit. When it does not, the returned time says when the window reopens.
func (l *limitador) permitir(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.barrer(now)

	cnt := l.porIP[ip]
	if cnt == nil || now.After(cnt.expira) {
		cnt = &contadorIP{expira: now.Add(l.ventana)}
		l.porIP[ip] = cnt
	}
	cnt.visto++
	return cnt.visto <= l.limite, cnt.expira
}

// barrer drops stale counters so one-off clients do not pile up. Runs inline
// at most once per ten windows; no background goroutine to manage.
func (l *limitador) barrer(now time.Time) {
	if now.Sub(l.barrido) < 10*l.ventana {
		return
	}
	for ip, cnt := range l.porIP {
		if now.After(cnt.expira) {
			delete(l.porIP, ip)
		}
	}
	l.barrido = now
}

func (l *limitador) handler(mensaje string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, expira := l.permitir(c.ClientIP())
		if !ok {
			segundos := int(time.Until(expira).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(segundos))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(mensaje))
			return
		}
		c.Next()
	}
}

var limitadorLogin = newLimitador(10, time.Minute)

// LoginRateLimiter throttles credential attempts per IP. Ten tries a minute
// is plenty for a cashier who mistyped a password and useless for brute force.
func LoginRateLimiter() gin.HandlerFunc {
	return limitadorLogin.handler("Demasiados intentos de acceso. Espere un minuto.")
}

// RateLimiter throttles the whole API surface per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newLimitador(limit, window).handler("Demasiadas solicitudes. Intente mas tarde.")
}
