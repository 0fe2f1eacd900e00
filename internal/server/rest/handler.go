package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/logging"
	"github.com/dmitrijs2005/gophfeed/internal/server/config"
	"github.com/dmitrijs2005/gophfeed/internal/server/models"
	"github.com/dmitrijs2005/gophfeed/internal/server/services"
	"github.com/gin-gonic/gin"
)

type UserService interface {
	Authenticator
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.AccessToken, error)
}

type PostService interface {
	CreatePost(ctx context.Context, p *models.Principal, text string) (*models.Post, error)
	CreateComment(ctx context.Context, p *models.Principal, postID, text string) (*models.Comment, error)
}

type FeedService interface {
	Page(ctx context.Context, page, pageSize int) (*models.FeedPage, error)
}

// Pinger reports datastore availability. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const healthCheckTimeout = 2 * time.Second

// Handler maps HTTP endpoints onto the services.
type Handler struct {
	users    UserService
	posts    PostService
	feed     FeedService
	db       Pinger
	pageSize int
	logger   logging.Logger
}

func NewHandler(l logging.Logger, us UserService, ps PostService, fs FeedService, db Pinger, pageSize int) *Handler {
	return &Handler{
		users:    us,
		posts:    ps,
		feed:     fs,
		db:       db,
		pageSize: pageSize,
		logger:   l.With("module", "http_handler"),
	}
}

// Register handles POST /register/.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fields, ok := fieldErrors(err); ok {
			c.JSON(http.StatusBadRequest, fields)
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgMalformedBody})
		return
	}

	u, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusBadRequest, map[string][]string{"username": {msgUsernameTaken}})
			return
		}
		h.internalError(c, err)
		return
	}

	h.logger.Info(c.Request.Context(), "Registered", "username", u.UserName)
	c.JSON(http.StatusCreated, registerResponse{Message: msgUserCreated, User: toUserDTO(u)})
}

// Login handles POST /api/login/.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: msgInvalidLogin})
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, errorResponse{Error: msgInvalidLogin})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, toLoginResponse(token))
}

// CreatePost handles POST /api/posts/create/.
func (h *Handler) CreatePost(c *gin.Context) {
	p, _ := principalFrom(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgTextRequired})
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), p, req.Text)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: msgTextRequired})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPostDTO(post))
}

// AddComment handles POST /api/comments/add/.
func (h *Handler) AddComment(c *gin.Context) {
	p, _ := principalFrom(c)

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.PostID) == "" || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgCommentFields})
		return
	}

	comment, err := h.posts.CreateComment(c.Request.Context(), p, strings.TrimSpace(req.PostID), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, errorResponse{Error: msgPostNotFound})
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, errorResponse{Error: msgCommentFields})
		default:
			h.internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, toCommentDTO(comment))
}

// ListPosts handles GET /api/posts/. Bad paging parameters fall back to
// defaults instead of failing.
func (h *Handler) ListPosts(c *gin.Context) {
	page := positiveQuery(c, "page", 1)
	size := min(positiveQuery(c, "page_size", h.pageSize), config.MaxPageSize)

	result, err := h.feed.Page(c.Request.Context(), page, size)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, toFeedPageDTO(result, absoluteURL(c.Request)))
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn(c.Request.Context(), "Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

func (h *Handler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
}

func positiveQuery(c *gin.Context, name string, def int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil || n < 1 {
		return def
	}
	return n
}
