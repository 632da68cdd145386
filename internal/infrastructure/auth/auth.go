// Package auth validates optional JWTs. A request without a token is anonymous;
// a request with a bad token is rejected.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/config"
)

const userIDKey = "auth_user_id"

// Validator validates JWTs using JWKS.
type Validator struct {
	cfg  *config.Config
	log  zerolog.Logger
	jwks *keyfunc.JWKS
}

// NewValidator initializes JWKS fetching when auth is enabled.
func NewValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Validator, error) {
	log = log.With().Str("component", "auth").Logger()
	if !cfg.AuthEnabled {
		return &Validator{cfg: cfg, log: log}, nil
	}

	jwks, err := keyfunc.Get(cfg.AuthJWKSURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Error().Err(err).Msg("jwks refresh error")
		},
	})
	if err != nil {
		return nil, err
	}

	return NewValidatorWithJWKS(cfg, jwks, log), nil
}

// NewValidatorWithJWKS builds a validator around an already loaded key set.
func NewValidatorWithJWKS(cfg *config.Config, jwks *keyfunc.JWKS, log zerolog.Logger) *Validator {
	return &Validator{cfg: cfg, log: log, jwks: jwks}
}

// Middleware attaches the caller's user id when a valid token is present.
// Tokens are read from the Authorization header first, then from the session cookie.
func (v *Validator) Middleware() gin.HandlerFunc {
	if v == nil || !v.cfg.AuthEnabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" && v.cfg.AuthCookieName != "" {
			if cookie, err := c.Cookie(v.cfg.AuthCookieName); err == nil {
				tokenString = strings.TrimSpace(cookie)
			}
		}
		if tokenString == "" {
			c.Next()
			return
		}

		opts := []jwt.ParserOption{
			jwt.WithIssuer(v.cfg.AuthIssuer),
			jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
			jwt.WithExpirationRequired(),
		}
		if audience := strings.TrimSpace(v.cfg.AuthAudience); audience != "" {
			opts = append(opts, jwt.WithAudience(audience))
		}

		token, err := jwt.Parse(tokenString, v.jwks.Keyfunc, opts...)
		if err != nil || !token.Valid {
			v.log.Debug().Err(err).Msg("rejected token")
			abortUnauthorized(c, "invalid token")
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || strings.TrimSpace(subject) == "" {
			abortUnauthorized(c, "invalid token subject")
			return
		}

		c.Set(userIDKey, subject)
		c.Next()
	}
}

// Ready indicates if the validator is prepared.
func (v *Validator) Ready() bool {
	if v == nil || !v.cfg.AuthEnabled {
		return true
	}
	return v.jwks != nil
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// SetUserID marks the request as authenticated. Used by tests and internal callers.
func SetUserID(c *gin.Context, userID string) {
	c.Set(userIDKey, userID)
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":  "auth-invalid-token-001",
		"error": message,
	})
}
