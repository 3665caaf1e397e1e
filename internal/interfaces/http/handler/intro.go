package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"educa-tennis-api/internal/application/assistant"
	"educa-tennis-api/internal/domain/entity"
	"educa-tennis-api/internal/interfaces/http/dto"
)

// IntroHandler 欢迎语处理器
type IntroHandler struct {
	engine *assistant.Engine
}

// NewIntroHandler 创建欢迎语处理器
func NewIntroHandler(engine *assistant.Engine) *IntroHandler {
	return &IntroHandler{engine: engine}
}

// Intro 生成欢迎语
// @Summary 生成欢迎语
// @Description 基于年龄组首页内容生成欢迎语和建议问题，结果按年龄组和语言缓存
// @Tags Chat
// @Accept json
// @Produce json
// @Param body body dto.IntroRequest true "欢迎语请求"
// @Success 200 {object} dto.Response[dto.IntroResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/intro [post]
func (h *IntroHandler) Intro(c *gin.Context) {
	var req dto.IntroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	out, err := h.engine.Introduction(c.Request.Context(), assistant.IntroInput{
		AgeGroup: entity.AgeGroup(strings.TrimSpace(req.AgeGroup)),
		Language: strings.TrimSpace(req.Language),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.IntroResponse{
		Greeting:    out.Greeting,
		Suggestions: out.Suggestions,
	})
}
