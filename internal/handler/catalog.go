package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/clinic-admin-service/internal/query"
	"github.com/maxviazov/clinic-admin-service/internal/service"
	"github.com/maxviazov/clinic-admin-service/pkg/response"
)

// CatalogHandler exposes one list module over HTTP.
type CatalogHandler[T any] struct {
	module      string
	svc         service.CatalogService[T]
	defaultSize int
}

func NewCatalogHandler[T any](module string, svc service.CatalogService[T], defaultSize int) *CatalogHandler[T] {
	if defaultSize <= 0 {
		defaultSize = 10
	}
	return &CatalogHandler[T]{module: module, svc: svc, defaultSize: defaultSize}
}

func (h *CatalogHandler[T]) Register(r *gin.RouterGroup) {
	g := r.Group("/" + h.module)
	{
		g.POST("/filter/:pageNumber/:pageSize", h.filter)
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/:id", h.getByID)
		g.DELETE("/:id", h.delete)
	}
}

// filterRequest is the body of the filter endpoint. Every field is optional.
type filterRequest struct {
	SearchTerm    string              `json:"searchTerm"`
	Filters       map[string][]string `json:"filters"`
	SortBy        string              `json:"sortBy"`
	SortDirection string              `json:"sortDirection"`
}

func (h *CatalogHandler[T]) filter(c *gin.Context) {
	var ferrs []service.FieldError
	page, err := strconv.Atoi(c.Param("pageNumber"))
	if err != nil {
		ferrs = append(ferrs, service.FieldError{Field: "pageNumber", Message: "must be an integer"})
	}
	size, err := strconv.Atoi(c.Param("pageSize"))
	if err != nil {
		ferrs = append(ferrs, service.FieldError{Field: "pageSize", Message: "must be an integer"})
	}

	var body filterRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			ferrs = append(ferrs, service.FieldError{Field: "body", Message: "malformed JSON"})
		}
	}
	dir, err := query.ParseDirection(body.SortDirection)
	if err != nil {
		ferrs = append(ferrs, service.FieldError{Field: "sortDirection", Message: "must be asc or desc"})
	}
	if err := service.NewInvalidInputError(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}

	b := query.NewRequest(page, size).Search(body.SearchTerm).Sort(body.SortBy, dir)
	for key, opts := range body.Filters {
		b.Filter(key, opts...)
	}
	h.respondPage(c, b.Build())
}

func (h *CatalogHandler[T]) list(c *gin.Context) {
	var ferrs []service.FieldError
	page, size := 0, h.defaultSize
	if v := c.Query(paramPage); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			ferrs = append(ferrs, service.FieldError{Field: paramPage, Message: "must be an integer"})
		}
		page = n
	}
	if v := c.Query(paramSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			ferrs = append(ferrs, service.FieldError{Field: paramSize, Message: "must be an integer"})
		}
		size = n
	}
	dir, err := query.ParseDirection(c.Query(paramSortDirection))
	if err != nil {
		ferrs = append(ferrs, service.FieldError{Field: paramSortDirection, Message: "must be asc or desc"})
	}
	if err := service.NewInvalidInputError(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}

	b := query.NewRequest(page, size).Search(c.Query(paramSearch)).Sort(c.Query(paramSortBy), dir)
	for key, values := range c.Request.URL.Query() {
		switch key {
		case paramPage, paramSize, paramSearch, paramSortBy, paramSortDirection:
			continue
		}
		b.Filter(key, splitOptions(values)...)
	}
	h.respondPage(c, b.Build())
}

// splitOptions accepts both repeated parameters and comma separated lists.
func splitOptions(values []string) []string {
	var out []string
	for _, v := range values {
		for _, opt := range strings.Split(v, ",") {
			if opt = strings.TrimSpace(opt); opt != "" {
				out = append(out, opt)
			}
		}
	}
	return out
}

func (h *CatalogHandler[T]) respondPage(c *gin.Context, req query.Request) {
	res, err := h.svc.List(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *CatalogHandler[T]) create(c *gin.Context) {
	var in T
	if err := c.ShouldBindJSON(&in); err != nil {
		response.WriteError(c, service.ErrInvalidInput) // не расшифровываем внутренние детали парсинга
		return
	}
	out, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, out)
}

func (h *CatalogHandler[T]) getByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	out, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, out)
}

func (h *CatalogHandler[T]) delete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
