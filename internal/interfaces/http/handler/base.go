package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "educa-tennis-api/pkg/errors"

	"educa-tennis-api/internal/interfaces/http/dto"
	"educa-tennis-api/pkg/logger"
)

// respondError 将应用错误映射为 HTTP 响应
func respondError(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)

	if appErr.HTTPStatus >= 500 {
		logger.FromContext(c.Request.Context()).Error("request failed",
			"error_code", string(appErr.Code),
			"error", appErr.Error(),
		)
	} else {
		logger.FromContext(c.Request.Context()).Warn("request failed",
			"error_code", string(appErr.Code),
			"error", appErr.Error(),
		)
	}

	dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, &dto.ErrorDetail{
		ErrorCode: string(appErr.Code),
		Details:   appErr.Detail,
	})
}
