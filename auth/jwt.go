// Package auth reads the caller's identity from bearer JWTs issued by the
// platform's user service.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang-jwt/jwt/v5/request"
	"github.com/google/uuid"
	"github.com/programme-lv/contest/httpjson"
	"github.com/programme-lv/contest/logger"
)

type JwtClaims struct {
	Username string `json:"username,omitempty"`
	UUID     string `json:"uuid,omitempty"`
	jwt.RegisteredClaims
}

// UserUUID prefers the uuid claim and falls back to sub.
func (c *JwtClaims) UserUUID() (uuid.UUID, error) {
	id := c.UUID
	if id == "" {
		id = c.Subject
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token carries no valid user uuid: %w", err)
	}
	return u, nil
}

type ctxKey struct{}

// GenerateJWT signs a token for the user. Tokens normally come from the
// user service; this is for tooling and tests.
func GenerateJWT(username string, userUUID uuid.UUID, ttl time.Duration, jwtKey []byte) (string, error) {
	claims := &JwtClaims{
		Username: username,
		UUID:     userUUID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUUID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func ValidateJWT(tokenStr string, jwtKey []byte) (*JwtClaims, error) {
	claims := &JwtClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, errors.New("invalid token signature")
		}
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if _, err := claims.UserUUID(); err != nil {
		return nil, err
	}
	return claims, nil
}

// Middleware attaches validated claims to the request context. Requests
// without a token pass through anonymously; invalid tokens are rejected.
func Middleware(jwtKey []byte) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, err := request.BearerExtractor{}.ExtractToken(r)
			if err != nil {
				if errors.Is(err, request.ErrNoTokenInRequest) {
					next.ServeHTTP(w, r)
					return
				}
				httpjson.HandleError(logger.FromContext(r.Context()), w, ErrUnauthorized(err.Error()))
				return
			}

			claims, err := ValidateJWT(token, jwtKey)
			if err != nil {
				httpjson.HandleError(logger.FromContext(r.Context()), w, ErrUnauthorized(err.Error()))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// ClaimsFromContext returns nil for anonymous requests.
func ClaimsFromContext(ctx context.Context) *JwtClaims {
	claims, _ := ctx.Value(ctxKey{}).(*JwtClaims)
	return claims
}

// RequireUser returns the caller's uuid or ErrUnauthorized.
func RequireUser(ctx context.Context) (uuid.UUID, error) {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return uuid.Nil, ErrUnauthorized("sign in required")
	}
	return claims.UserUUID()
}
