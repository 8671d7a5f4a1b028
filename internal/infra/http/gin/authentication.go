package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"milahouse/internal/app/access"
	"milahouse/internal/infra/security"
)

const principalContextKey = "milahouse.principal"

// BasicAuth guards the admin routes with the staff credentials and puts an
// admin principal into the request context for the bus policies.
type BasicAuth struct {
	Credentials security.Credentials
	Realm       string
	Logger      *slog.Logger
}

func (m BasicAuth) Handle(c *gin.Context) {
	user, pass, ok := c.Request.BasicAuth()
	if !ok || m.Credentials.Verify(user, pass) != nil {
		if ok && m.Logger != nil {
			m.Logger.Warn("admin login rejected", "user", user, "ip", c.ClientIP())
		}
		c.Header("WWW-Authenticate", `Basic realm="`+m.realm()+`", charset="UTF-8"`)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	p := access.Principal{Name: user, Admin: true}
	c.Set(principalContextKey, p)
	c.Request = c.Request.WithContext(access.WithPrincipal(c.Request.Context(), p))
	c.Next()
}

func (m BasicAuth) realm() string {
	if m.Realm != "" {
		return m.Realm
	}
	return "milahouse admin"
}
