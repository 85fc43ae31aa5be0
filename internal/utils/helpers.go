package utils

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// QueryBool accepts the strconv.ParseBool spellings; anything else is false.
func QueryBool(c *gin.Context, key string) bool {
	v, _ := strconv.ParseBool(c.Query(key))
	return v
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
