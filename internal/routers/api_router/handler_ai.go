package api_router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-note-service/internal/app"
	"github.com/haierkeys/markdown-note-service/internal/dto"
	"github.com/haierkeys/markdown-note-service/internal/service"
	pkgapp "github.com/haierkeys/markdown-note-service/pkg/app"
	"github.com/haierkeys/markdown-note-service/pkg/logger"
	"go.uber.org/zap"
)

// AIHandler /ai-assist proxy handler
// AIHandler AI 助手代理处理器
// Answers with bare {result} / {error} bodies and real HTTP statuses
// 响应体为 {result} / {error}，使用真实 HTTP 状态码，不套统一响应结构
type AIHandler struct {
	*Handler
	requireAuth bool
}

// NewAIHandler 创建 AIHandler 实例
func NewAIHandler(a *app.App) *AIHandler {
	return &AIHandler{
		Handler:     NewHandler(a),
		requireAuth: a.Config().Security.AIAssistRequireAuth,
	}
}

// Assist 执行一次 AI 助手调用
// @Summary AI writing assistant
// @Description action is one of generate, expand, summarize, improve
// @Description action 取值 generate、expand、summarize、improve
// @Tags AI
// @Accept json
// @Produce json
// @Param params body dto.AssistRequest true "Assist Parameters"
// @Success 200 {object} dto.AssistResponse
// @Failure 402 {object} dto.AssistErrorResponse "AI credits depleted"
// @Failure 429 {object} dto.AssistErrorResponse "Rate limit exceeded"
// @Failure 500 {object} dto.AssistErrorResponse "Invalid action / upstream failure"
// @Router /ai-assist [post]
func (h *AIHandler) Assist(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			h.App.Logger().Error("AIHandler.Assist panic", zap.Any("panic", r), zap.Stack("stack"))
			writeAssistError(c, http.StatusInternalServerError, fmt.Sprint(r))
		}
	}()

	ctx := c.Request.Context()

	if h.requireAuth && pkgapp.GetUID(c) == 0 {
		writeAssistError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params := &dto.AssistRequest{}
	if err := c.ShouldBindJSON(params); err != nil {
		h.logError(ctx, "AIHandler.Assist.ShouldBindJSON", err)
		writeAssistError(c, http.StatusInternalServerError, err.Error())
		return
	}

	h.App.Logger().Info("AI assist request",
		zap.String(logger.FieldAction, params.Action),
		zap.Int64(logger.FieldUID, pkgapp.GetUID(c)))

	result, err := h.App.AIService.Assist(ctx, params.Action, params.Content)
	if err != nil {
		h.logError(ctx, "AIHandler.Assist", err)
		var aerr *service.AssistError
		if errors.As(err, &aerr) {
			writeAssistError(c, aerr.StatusCode, aerr.Error())
			return
		}
		writeAssistError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Set("status_code", http.StatusOK)
	c.JSON(http.StatusOK, dto.AssistResponse{Result: result})
}

func writeAssistError(c *gin.Context, status int, msg string) {
	if msg == "" {
		msg = service.MsgAIInternal
	}
	c.Set("status_code", status)
	c.AbortWithStatusJSON(status, dto.AssistErrorResponse{Error: msg})
}
