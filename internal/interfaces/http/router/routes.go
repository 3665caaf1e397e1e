// Package router 提供 HTTP 路由配置
package router

import (
	"educa-tennis-api/internal/interfaces/http/handler"

	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(
	v1 *gin.RouterGroup,
	chatHandler *handler.ChatHandler,
	introHandler *handler.IntroHandler,
) {
	// 问答
	v1.POST("/chat", chatHandler.Chat)

	// 欢迎语
	v1.POST("/intro", introHandler.Intro)
}
