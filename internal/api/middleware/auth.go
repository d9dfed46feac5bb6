package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/ClinicBookingService/internal/api/handlers"
)

const (
	// HeaderUserID идентификатор пациента, проставляется шлюзом
	HeaderUserID = "X-User-ID"
	// HeaderClinicID идентификатор клиники администратора, проставляется шлюзом
	HeaderClinicID = "X-Clinic-ID"
)

const (
	msgMissingUserID   = "отсутствует или некорректен заголовок X-User-ID"
	msgMissingClinicID = "отсутствует или некорректен заголовок X-Clinic-ID"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	clinicIDKey contextKey = "clinicID"
)

// Auth требует X-User-ID и кладет ID пациента в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := parseID(r.Header.Get(HeaderUserID))
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// OptionalAuth кладет ID пациента в контекст, если заголовок передан
// Запись без заголовка оформляется как запись без аккаунта
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		userID, ok := parseID(raw)
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// ClinicAuth требует X-Clinic-ID и кладет ID клиники в контекст
// X-User-ID при этом необязателен
func ClinicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clinicID, ok := parseID(r.Header.Get(HeaderClinicID))
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingClinicID)
			return
		}
		ctx := context.WithValue(r.Context(), clinicIDKey, clinicID)
		if userID, ok := parseID(r.Header.Get(HeaderUserID)); ok {
			ctx = context.WithValue(ctx, userIDKey, userID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AnyAuth требует хотя бы один из заголовков: пациента или клиники
func AnyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID, hasUser := parseID(r.Header.Get(HeaderUserID))
		if hasUser {
			ctx = context.WithValue(ctx, userIDKey, userID)
		}
		clinicID, hasClinic := parseID(r.Header.Get(HeaderClinicID))
		if hasClinic {
			ctx = context.WithValue(ctx, clinicIDKey, clinicID)
		}
		if !hasUser && !hasClinic {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пациента из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetClinicID возвращает ID клиники из контекста
func GetClinicID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(clinicIDKey).(int64)
	return id, ok
}

// WithUserID кладет ID пациента в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// WithClinicID кладет ID клиники в контекст
func WithClinicID(ctx context.Context, clinicID int64) context.Context {
	return context.WithValue(ctx, clinicIDKey, clinicID)
}

func parseID(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
