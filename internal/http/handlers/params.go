package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

func idParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apierr.Validation("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// pagination reads skip/limit query params, clamping limit to a sane range.
func pagination(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return skip, limit
}

func uintQuery(c *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(c.Query(name), 10, 64)
	return uint(v)
}
