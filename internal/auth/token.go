package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

// --------- JWT ---------

type sessionClaims struct {
	Level int `json:"level"`
	jwt.RegisteredClaims
}

// Tokens assina e valida o token entregue à UI no login. O jti é o id da
// sessão ativa; um token só vale enquanto aquela sessão estiver ativa.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *Tokens) Issue(s session.Session) (string, error) {
	now := t.now()

	claims := sessionClaims{
		Level: s.Level,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   strconv.FormatUint(uint64(s.UserID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse devolve o id da sessão e o usuário gravados no token.
func (t *Tokens) Parse(raw string) (string, uint, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", 0, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.ID == "" {
		return "", 0, errors.New("invalid token")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid token subject: %w", err)
	}

	return claims.ID, uint(userID), nil
}
