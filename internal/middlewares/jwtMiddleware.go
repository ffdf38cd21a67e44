package middlewares

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"trendwise/internal/models"
	"trendwise/internal/utils"
)

func parseClaims(w http.ResponseWriter, r *http.Request) (*utils.Claims, bool) {
	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtKey) == 0 {
		log.Error().Msg("JWT_SECRET is not set in environment. Authentication will fail.")
		http.Error(w, "Server configuration error: JWT secret missing", http.StatusInternalServerError)
		return nil, false
	}

	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		// OAuth logins carry the token in a cookie instead.
		if cookie, err := r.Cookie("jwt"); err == nil {
			tokenString = "Bearer " + cookie.Value
		}
	}
	if tokenString == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return nil, false
	}

	if !strings.HasPrefix(tokenString, "Bearer ") {
		http.Error(w, "Invalid token format", http.StatusUnauthorized)
		return nil, false
	}
	tokenString = tokenString[len("Bearer "):]

	claims := &utils.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := parseClaims(w, r)
		if !ok {
			return
		}

		ctx := context.WithValue(r.Context(), "userID", claims.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware additionally requires the admin role claim.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := parseClaims(w, r)
		if !ok {
			return
		}
		if claims.Role != models.RoleAdmin {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), "userID", claims.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
