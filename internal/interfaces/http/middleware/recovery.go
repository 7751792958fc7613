// Package middleware 提供 HTTP 中间件
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"z-novel-studio/internal/interfaces/http/dto"
	"z-novel-studio/pkg/logger"
)

// Recovery 捕获处理器 panic，记录堆栈后按统一错误结构回 500
//
// 守护进程常驻桌面后台，单个请求崩溃不能拖垮整个进程；
// 适配器的文档写入要么已完成要么未发生，恢复后继续服务是安全的。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			logger.Error(c.Request.Context(), "panic recovered",
				fmt.Errorf("%v", r),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"stack", string(debug.Stack()),
			)

			c.Abort()
			dto.InternalError(c, "internal server error")
		}()

		c.Next()
	}
}
