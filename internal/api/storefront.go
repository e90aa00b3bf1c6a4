package api

import (
	"net/http"
	"strconv"

	"storefront/internal/backend"
	"storefront/internal/catalog"
	"storefront/internal/view"

	"github.com/gin-gonic/gin"
)

func (h *Handler) home(c *gin.Context) {
	ctx := c.Request.Context()

	c.JSON(http.StatusOK, view.HomeView{
		Categories: view.Categories(h.catalog.Categories()),
		Products:   view.Listing(h.catalog.All(ctx)),
		Blog:       view.BlogPreview(h.blog.Preview(ctx), h.opts.BlogPublicURL),
	})
}

func (h *Handler) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": view.Categories(h.catalog.Categories())})
}

func (h *Handler) categoryPage(c *gin.Context) {
	cat, listing, err := h.catalog.ByCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view.CategoryPageView{
		Category: view.Category(cat),
		Listing:  view.Listing(listing),
	})
}

func (h *Handler) search(c *gin.Context) {
	term, listing, err := h.catalog.Search(c.Request.Context(), c.Param("query"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view.SearchPageView{
		Query:   term,
		Listing: view.Listing(listing),
	})
}

func (h *Handler) productDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	p, err := h.catalog.Product(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view.ProductDetail(*p))
}

func (h *Handler) tags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tags": catalog.TagsByPrefix(c.Query("prefix"))})
}

func (h *Handler) blogPage(c *gin.Context) {
	q := backend.BlogQuery{Keyword: c.Query("keyword")}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "0"))
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		q.CategoryID = id
	}

	page, err := h.blog.Page(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view.BlogPage(page, h.opts.BlogPublicURL))
}

func (h *Handler) blogPost(c *gin.Context) {
	post, err := h.blog.Post(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post": post,
		"card": view.BlogCard(*post, h.opts.BlogPublicURL),
	})
}
