package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/slinet/ehparse/pkg/parser"
	"github.com/slinet/ehparse/pkg/utils"
)

// URLHandler decodes gallery and page links.
type URLHandler struct {
	parser *parser.Parser
}

func NewURLHandler(p *parser.Parser) *URLHandler {
	return &URLHandler{parser: p}
}

// Detail handles GET /api/url/detail?url=...&strict=true
func (h *URLHandler) Detail(c *gin.Context) {
	href, strict, ok := urlParams(c)
	if !ok {
		return
	}
	id, err := h.parser.ParseDetailURL(href, strict)
	if err != nil {
		status, msg := StatusFor(err)
		c.JSON(status, utils.GetResponse(nil, status, msg, nil))
		return
	}
	c.JSON(200, utils.GetResponse(id, 200, "success", nil))
}

// Page handles GET /api/url/page?url=...&strict=true
func (h *URLHandler) Page(c *gin.Context) {
	href, strict, ok := urlParams(c)
	if !ok {
		return
	}
	id, err := h.parser.ParsePageURL(href, strict)
	if err != nil {
		status, msg := StatusFor(err)
		c.JSON(status, utils.GetResponse(nil, status, msg, nil))
		return
	}
	c.JSON(200, utils.GetResponse(id, 200, "success", nil))
}

func urlParams(c *gin.Context) (string, bool, bool) {
	href := c.Query("url")
	if href == "" {
		c.JSON(400, utils.GetResponse(nil, 400, "url is required", nil))
		return "", false, false
	}
	strict, err := strconv.ParseBool(c.DefaultQuery("strict", "true"))
	if err != nil {
		c.JSON(400, utils.GetResponse(nil, 400, "invalid strict", nil))
		return "", false, false
	}
	return href, strict, true
}
