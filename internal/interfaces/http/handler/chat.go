// Package handler 提供 HTTP 请求处理器
package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"educa-tennis-api/internal/application/assistant"
	"educa-tennis-api/internal/domain/entity"
	"educa-tennis-api/internal/interfaces/http/dto"
	"educa-tennis-api/pkg/logger"
)

// ChatHandler 问答处理器
type ChatHandler struct {
	engine *assistant.Engine
}

// NewChatHandler 创建问答处理器
func NewChatHandler(engine *assistant.Engine) *ChatHandler {
	return &ChatHandler{engine: engine}
}

// Chat 单轮问答
// @Summary 单轮问答
// @Description 针对训练计划内容的单轮问答，按提问者画像过滤检索结果
// @Tags Chat
// @Accept json
// @Produce json
// @Param body body dto.ChatRequest true "问答请求"
// @Success 200 {object} dto.Response[dto.ChatResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	role := entity.CoachRole(strings.TrimSpace(req.Profile.Role))
	if !role.Valid() {
		dto.BadRequest(c, "invalid role: "+req.Profile.Role)
		return
	}
	ageGroup := entity.AgeGroup(strings.TrimSpace(req.Profile.AgeGroup))
	if !ageGroup.Valid() {
		dto.BadRequest(c, "invalid age_group: "+req.Profile.AgeGroup)
		return
	}

	ctx := logger.WithContext(c.Request.Context(), logger.AgeGroupKey, string(ageGroup))
	c.Request = c.Request.WithContext(ctx)

	out, err := h.engine.Answer(ctx, assistant.AnswerInput{
		Question: req.Question,
		Profile: entity.UserProfile{
			Role:     role,
			AgeGroup: ageGroup,
			Language: strings.TrimSpace(req.Profile.Language),
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ChatResponse{
		Answer:    out.Answer,
		Clarified: out.Clarified,
	})
}
