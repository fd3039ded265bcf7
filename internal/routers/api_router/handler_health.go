package api_router

import (
	"context"
	"os"
	"time"

	"github.com/haierkeys/markdown-note-service/internal/app"
	pkgapp "github.com/haierkeys/markdown-note-service/pkg/app"
	"github.com/haierkeys/markdown-note-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status      string  `json:"status"`      // "healthy" 或 "unhealthy"
	Version     string  `json:"version"`     // 服务版本号
	Uptime      float64 `json:"uptime"`      // 运行时间（秒）
	Database    string  `json:"database"`    // "connected" 或 "error"
	MemUsed     float64 `json:"memUsed"`     // 主机内存使用率（%）
	ProcessRSS  uint64  `json:"processRss"`  // 进程常驻内存（字节）
	WorkerTasks int64   `json:"workerTasks"` // 协程池执行中的任务数
	WriteQueued int64   `json:"writeQueued"` // 写队列等待数
}

// Check 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态，包括数据库连接与内存占用
// @Tags 系统
// @Produce json
// @Success 200 {object} pkgapp.Res{data=HealthResponse}
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	response := HealthResponse{
		Status:      "healthy",
		Version:     h.App.Version().Version,
		Uptime:      time.Since(h.App.StartTime).Seconds(),
		Database:    "connected",
		WorkerTasks: h.App.WorkerPool().ActiveCount(),
		WriteQueued: int64(h.App.WriteQueueManager().QueuedCount()),
	}

	if vm, err := mem.VirtualMemoryWithContext(c.Request.Context()); err == nil {
		response.MemUsed = vm.UsedPercent
	}
	if p, err := process.NewProcessWithContext(c.Request.Context(), int32(os.Getpid())); err == nil {
		if info, err := p.MemoryInfoWithContext(c.Request.Context()); err == nil {
			response.ProcessRSS = info.RSS
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.App.Dao.Ping(ctx); err != nil {
		response.Status = "unhealthy"
		response.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.Failed.WithData(response))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(response))
}
