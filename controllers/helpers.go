package controllers

import (
	"github.com/gin-gonic/gin"
)

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	default:
		return 0, false
	}
}

// coupleIDFromCtx relies on the couple middleware having resolved the
// membership already.
func coupleIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("coupleID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
