package request

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clinic-backend/internal/shared"
)

// ParseUUID reads a UUID path parameter. The returned message is meant for
// a 400 response.
func ParseUUID(c *gin.Context, param string) (uuid.UUID, string, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Sprintf("Invalid value '%s' for parameter '%s'. Expected a UUID.", raw, param), false
	}
	return id, "", true
}

// ParsePage reads ?page=&size=. paged is false when no page was requested,
// in which case callers return the full list.
func ParsePage(c *gin.Context) (page shared.PageRequest, paged bool, msg string) {
	rawPage, hasPage := c.GetQuery("page")
	if !hasPage {
		return shared.PageRequest{}, false, ""
	}

	p, err := strconv.Atoi(rawPage)
	if err != nil || p < 0 || p > shared.MaxPage {
		return shared.PageRequest{}, true, fmt.Sprintf("Invalid value '%s' for parameter 'page'. Expected an integer between 0 and %d.", rawPage, shared.MaxPage)
	}
	page.Page = p

	if rawSize, ok := c.GetQuery("size"); ok {
		size, err := strconv.Atoi(rawSize)
		if err != nil || size < 1 {
			return shared.PageRequest{}, true, fmt.Sprintf("Invalid value '%s' for parameter 'size'. Expected a positive integer.", rawSize)
		}
		page.Size = size
	}

	return page.Normalize(), true, ""
}
