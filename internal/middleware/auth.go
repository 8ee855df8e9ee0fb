package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

const ContextSession = "session"

type TokenResolver interface {
	ResolveToken(raw string) session.Session
}

// SessionMiddleware troca o bearer token pela sessão ativa. Token
// ausente, inválido ou de sessão encerrada vira sessão anônima; cada
// caso de uso decide se isso basta.
func SessionMiddleware(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.Anonymous

		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			sess = resolver.ResolveToken(strings.TrimSpace(parts[1]))
		}

		c.Set(ContextSession, sess)
		c.Next()
	}
}

func SessionFrom(c *gin.Context) session.Session {
	if v, ok := c.Get(ContextSession); ok {
		if sess, ok := v.(session.Session); ok {
			return sess
		}
	}
	return session.Anonymous
}
