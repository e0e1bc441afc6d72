package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/catalog-service/internal/config"
	"github.com/light-bringer/catalog-service/internal/pkg/paging"
)

func pathInt64(c *gin.Context, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, typeMismatch(name, "int")
	}
	return v, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, typeMismatch(name, "int")
	}
	return v, nil
}

func queryBool(c *gin.Context, name string, def bool) (bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, typeMismatch(name, "bool")
	}
	return v, nil
}

// pageRequest reads page and size, applying the configured default and cap.
func pageRequest(c *gin.Context, cfg config.PaginationConfig) (paging.Request, error) {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return paging.Request{}, err
	}
	size, err := queryInt(c, "size", cfg.DefaultSize)
	if err != nil {
		return paging.Request{}, err
	}
	return paging.NewRequest(page, size, cfg.MaxSize)
}
