package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// sharerHeader carries the authenticated caller id, set by the upstream
// gateway.
const sharerHeader = "X-Sharer-User-Id"

// sharerID extracts the caller id from the request header. The second return
// is false when the header is missing or malformed.
func sharerID(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(sharerHeader)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// pageArgs extracts the optional from/size query parameters. Absent
// parameters stay nil so the pagination policy can tell "missing" from
// zero; malformed values surface as a second false return.
func pageArgs(c *gin.Context) (from, size *int, ok bool) {
	if raw, present := c.GetQuery("from"); present {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, false
		}
		from = &v
	}
	if raw, present := c.GetQuery("size"); present {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, false
		}
		size = &v
	}
	return from, size, true
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
