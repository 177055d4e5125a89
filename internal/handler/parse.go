package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/slinet/ehparse/internal/logger"
	"github.com/slinet/ehparse/internal/middleware"
	"github.com/slinet/ehparse/pkg/filter"
	"github.com/slinet/ehparse/pkg/parser"
	"github.com/slinet/ehparse/pkg/utils"
)

// ParseHandler decodes documents POSTed by the collaborator that fetched them.
type ParseHandler struct {
	logger       *zap.Logger
	parser       *parser.Parser
	maxBodyBytes int64
}

func NewParseHandler(logger *zap.Logger, p *parser.Parser, maxBodyBytes int64) *ParseHandler {
	return &ParseHandler{
		logger:       logger,
		parser:       p,
		maxBodyBytes: maxBodyBytes,
	}
}

// Register mounts the parse routes on an /api group.
func (h *ParseHandler) Register(api *gin.RouterGroup) {
	g := api.Group("/parse")
	g.POST("/list", h.List)
	g.POST("/nav", h.Nav)
	g.POST("/detail", h.Detail)
	g.POST("/torrents", h.Torrents)
	g.POST("/archive", h.Archive)
	g.POST("/page", h.Page)
	g.POST("/signin", h.SignIn)
	g.POST("/favorites", h.Favorites)
}

// List handles POST /api/parse/list
// Optional query: q (search syntax) and f_cats (category exclusion mask).
func (h *ParseHandler) List(c *gin.Context) {
	var q *filter.Query
	if s := c.Query("q"); s != "" {
		q = filter.Parse(s)
	}
	var mask uint32
	if s := c.Query("f_cats"); s != "" {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			c.JSON(400, utils.GetResponse(nil, 400, "invalid f_cats", nil))
			return
		}
		mask = uint32(n)
	}

	body, ok := h.readBody(c)
	if !ok {
		return
	}
	list, err := decode(h, c, "list", body, h.parser.ParseGalleryList)
	if err != nil {
		return
	}
	if q != nil || mask != 0 {
		list.Galleries = filter.Apply(list.Galleries, q, mask)
	}
	c.JSON(200, utils.GetResponse(list, 200, "success", utils.Count(len(list.Galleries))))
}

// Nav handles POST /api/parse/nav
func (h *ParseHandler) Nav(c *gin.Context) {
	respond(h, c, "nav", parser.ParseSearchNav)
}

// Detail handles POST /api/parse/detail
func (h *ParseHandler) Detail(c *gin.Context) {
	respond(h, c, "detail", h.parser.ParseGalleryDetail)
}

// Torrents handles POST /api/parse/torrents
func (h *ParseHandler) Torrents(c *gin.Context) {
	respond(h, c, "torrents", parser.ParseTorrentList)
}

// Archive handles POST /api/parse/archive
func (h *ParseHandler) Archive(c *gin.Context) {
	respond(h, c, "archive", parser.ParseArchive)
}

// Page handles POST /api/parse/page
func (h *ParseHandler) Page(c *gin.Context) {
	respond(h, c, "page", parser.ParseGalleryPage)
}

// SignIn handles POST /api/parse/signin
func (h *ParseHandler) SignIn(c *gin.Context) {
	respond(h, c, "signin", func(body string) (gin.H, error) {
		name, err := parser.ParseSignIn(body)
		if err != nil {
			return nil, err
		}
		return gin.H{"username": name}, nil
	})
}

// Favorites handles POST /api/parse/favorites
func (h *ParseHandler) Favorites(c *gin.Context) {
	respond(h, c, "favorites", h.parser.ParseFavorites)
}

func respond[T any](h *ParseHandler, c *gin.Context, kind string, fn func(string) (T, error)) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	v, err := decode(h, c, kind, body, fn)
	if err != nil {
		return
	}
	c.JSON(200, utils.GetResponse(v, 200, "success", nil))
}

// decode runs fn and, on failure, writes the error response.
func decode[T any](h *ParseHandler, c *gin.Context, kind, body string, fn func(string) (T, error)) (T, error) {
	start := time.Now()
	v, err := fn(body)
	fields := append(logger.Document(kind, len(body), time.Since(start)),
		zap.String("request_id", middleware.RequestIDFrom(c)))
	if err != nil {
		h.logger.Warn("document rejected", append(fields, zap.Error(err))...)
		if d, ok := parser.BanDuration(body); ok {
			c.Header("Retry-After", strconv.Itoa(int(d.Seconds())))
		}
		status, msg := StatusFor(err)
		c.JSON(status, utils.GetResponse(nil, status, msg, nil))
		return v, err
	}
	h.logger.Debug("document parsed", fields...)
	return v, nil
}

func (h *ParseHandler) readBody(c *gin.Context) (string, bool) {
	r := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	data, err := io.ReadAll(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(413, utils.GetResponse(nil, 413, "document is too large", nil))
			return "", false
		}
		_ = c.Error(err)
		return "", false
	}
	if len(data) == 0 {
		c.JSON(400, utils.GetResponse(nil, 400, "empty document", nil))
		return "", false
	}
	return string(data), true
}

// StatusFor maps a decode error to an HTTP status and client message.
func StatusFor(err error) (int, string) {
	var server *parser.ServerError
	switch {
	case errors.Is(err, parser.ErrSignInRequired):
		return 401, err.Error()
	case errors.As(err, &server):
		return 422, server.Message
	default:
		return 400, "malformed document: " + err.Error()
	}
}
