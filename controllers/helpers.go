package controllers

import (
	"strconv"

	"hotelpms/response"

	"github.com/gin-gonic/gin"
)

// parseID đọc tham số đường dẫn dạng số, trả false và ghi response lỗi nếu sai
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, name+" không hợp lệ")
		return 0, false
	}
	return uint(id), true
}
