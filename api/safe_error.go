package api

import (
	"errors"
	"strconv"

	"budget/config"
	"budget/database"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// respondError 按错误类型映射状态码：校验 400，不存在 404，其余 500
func respondError(c *gin.Context, err error, notFound string) {
	var ve *service.ValidationError
	var se *service.StoreError
	switch {
	case errors.As(err, &ve):
		BadRequest(c, ve.Message)
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, notFound)
	case errors.As(err, &se):
		InternalError(c, SafeErrorMessage(err, se.Message))
	default:
		InternalError(c, SafeErrorMessage(err, "服务器内部错误"))
	}
}

// parseID 解析路径参数 id，失败时已写入 400
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// gateway 每次请求基于当前连接创建网关
func gateway() *service.Gateway {
	return service.NewGateway(database.DB)
}
