package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/logging"
	"github.com/dmitrijs2005/gophfeed/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// gin context keys
const (
	requestIDKey = "request_id"
	principalKey = "principal"
)

const maxRequestIDLength = 128

// RequestID takes X-Request-ID from the request or generates one, stores it
// in the gin context and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

// RequestLogger logs one line per request. 5xx responses are logged at error
// level together with the errors attached to the gin context.
func RequestLogger(l logging.Logger) gin.HandlerFunc {
	logger := l.With("module", "http")
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		}
		if p, ok := principalFrom(c); ok {
			args = append(args, "user", p.UserName)
		}

		if status >= http.StatusInternalServerError {
			if len(c.Errors) > 0 {
				args = append(args, "errors", c.Errors.Errors())
			}
			logger.Error(c.Request.Context(), "HTTP request", args...)
			return
		}
		logger.Info(c.Request.Context(), "HTTP request", args...)
	}
}

// Recovery turns a panic into a 500 response and logs it.
func Recovery(l logging.Logger) gin.HandlerFunc {
	logger := l.With("module", "http")
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error(c.Request.Context(), "Panic recovered",
			"request_id", c.GetString(requestIDKey),
			"path", c.Request.URL.Path,
			"error", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
	})
}

// Authenticator resolves request credentials to a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	PrincipalFromToken(ctx context.Context, token string) (*models.Principal, error)
}

// Authenticate requires either a Bearer access token or Basic credentials and
// stores the resulting principal in the gin context.
func Authenticate(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		scheme, credentials, _ := strings.Cut(header, " ")
		credentials = strings.TrimSpace(credentials)

		var (
			p   *models.Principal
			err error
		)

		switch {
		case strings.EqualFold(scheme, common.BearerScheme) && credentials != "":
			p, err = a.PrincipalFromToken(c.Request.Context(), credentials)
			if err != nil {
				if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrTokenExpired) {
					unauthorized(c, msgInvalidToken)
					return
				}
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
				return
			}

		case strings.EqualFold(scheme, common.BasicScheme) && credentials != "":
			username, password, ok := c.Request.BasicAuth()
			if !ok {
				unauthorized(c, msgInvalidBasic)
				return
			}
			var u *models.User
			u, err = a.Authenticate(c.Request.Context(), username, password)
			if err != nil {
				if errors.Is(err, common.ErrorUnauthorized) {
					unauthorized(c, msgInvalidBasic)
					return
				}
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
				return
			}
			p = &models.Principal{UserID: u.ID, UserName: u.UserName}

		default:
			unauthorized(c, msgNoCredentials)
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: msg})
}

// principalFrom returns the principal stored by Authenticate.
func principalFrom(c *gin.Context) (*models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*models.Principal)
	return p, ok
}
