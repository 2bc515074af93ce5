package common

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// WriteError 寫入錯誤響應，依錯誤種類決定狀態碼
func WriteError(c *gin.Context, err error) {
	status := StatusOf(err)
	resp := ErrorResponse{
		Code:    CodeOf(err),
		Message: err.Error(),
	}
	if status >= 500 {
		LogError("請求處理失敗",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Get(c)),
		)
		resp.Message = "服務暫時不可用"
		if gin.Mode() == gin.DebugMode {
			resp.Details = err.Error()
		}
	}
	c.AbortWithStatusJSON(status, resp)
}
