package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID 解析路径中的非负整数ID，0 是合法值（查不到任何数据）
func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
