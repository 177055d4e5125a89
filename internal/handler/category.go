package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/slinet/ehparse/pkg/parser"
	"github.com/slinet/ehparse/pkg/utils"
)

// CategoryHandler exposes the category table to clients building filters.
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List handles GET /api/category
// With ?f_cats=<mask> it lists the category names a site exclusion mask
// leaves visible instead.
func (h *CategoryHandler) List(c *gin.Context) {
	if s := c.Query("f_cats"); s != "" {
		n, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			c.JSON(400, utils.GetResponse(nil, 400, "invalid f_cats", nil))
			return
		}
		names := parser.CategoriesFromBits(uint32(n))
		c.JSON(200, utils.GetResponse(names, 200, "success", utils.Count(len(names))))
		return
	}
	cats := parser.Categories()
	c.JSON(200, utils.GetResponse(cats, 200, "success", utils.Count(len(cats))))
}

// Get handles GET /api/category/:value
// value is either a label ("Artist CG Sets", "doujinshi") or a single flag
// ("8", "0x8"). Unknown labels decode to the Unknown category.
func (h *CategoryHandler) Get(c *gin.Context) {
	value := strings.TrimSpace(c.Param("value"))
	if n, err := strconv.ParseUint(value, 0, 32); err == nil {
		c.JSON(200, utils.GetResponse(parser.CategoryFromFlag(uint32(n)), 200, "success", nil))
		return
	}
	c.JSON(200, utils.GetResponse(parser.ParseCategory(value), 200, "success", nil))
}
