package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/auth"
	"github.com/2beens/evolvx/internal/telemetry/tracing"
	"github.com/2beens/evolvx/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

type AuthMiddlewareHandler struct {
	verifier     TokenVerifier
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(verifier TokenVerifier) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		verifier: verifier,
		allowedPaths: map[string]bool{
			"/health": true,
		},
	}
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			token, found := bearerToken(r)
			if !found {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteJSONError(w, "missing bearer token", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			claims, err := h.verifier.Verify(ctx, token)
			if errors.Is(err, apperr.ErrDependency) {
				log.Warnf("[auth middleware] cannot verify token => %s: %s", r.URL.Path, err)
				pkg.WriteJSONError(w, "token verification unavailable", http.StatusServiceUnavailable)
				span.SetStatus(codes.Error, "verification-unavailable")
				span.RecordError(err)
				return
			}
			if err != nil {
				log.Debugf("[invalid token] [auth middleware] unauthorized => %s: %s", r.URL.Path, err)
				pkg.WriteJSONError(w, "invalid bearer token", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-token")
				span.RecordError(err)
				return
			}

			span.SetAttributes(attribute.Int("user.id", claims.UserID))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
