package api_router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-note-service/internal/app"
	"github.com/haierkeys/markdown-note-service/internal/dto"
	pkgapp "github.com/haierkeys/markdown-note-service/pkg/app"
	"github.com/haierkeys/markdown-note-service/pkg/code"
	apperrors "github.com/haierkeys/markdown-note-service/pkg/errors"
	"go.uber.org/zap"
)

// UserHandler 账号接口：注册、登录、当前用户
type UserHandler struct {
	*Handler
}

func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{Handler: NewHandler(a)}
}

// Register 注册账号，成功即返回带 token 的会话
// @Summary 注册
// @Description 服务端可通过 user.register-is-enable 关闭注册
// @Tags 账号
// @Accept json
// @Produce json
// @Param params body dto.UserCreateRequest true "注册参数"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO}
// @Failure 400 {object} pkgapp.Res "参数错误 / 注册已关闭 / 用户已存在"
// @Router /api/user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	params := &dto.UserCreateRequest{}
	if !h.bind(c, "UserHandler.Register", params) {
		return
	}
	h.session(c, "UserHandler.Register", func(ctx context.Context) (*dto.UserDTO, error) {
		return h.App.UserService.Register(ctx, params)
	})
}

// Login 用户名或邮箱加密码登录
// @Summary 登录
// @Tags 账号
// @Accept json
// @Produce json
// @Param params body dto.UserLoginRequest true "登录参数"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO}
// @Failure 400 {object} pkgapp.Res "参数错误 / 凭证无效"
// @Router /api/user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	params := &dto.UserLoginRequest{}
	if !h.bind(c, "UserHandler.Login", params) {
		return
	}
	ip := pkgapp.GetRequestIP(c)
	h.session(c, "UserHandler.Login", func(ctx context.Context) (*dto.UserDTO, error) {
		return h.App.UserService.Login(ctx, params, ip)
	})
}

// UserInfo 当前 token 对应的用户，客户端恢复会话时调用
// @Summary 当前用户
// @Tags 账号
// @Produce json
// @Security UserAuthToken
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO}
// @Failure 401 {object} pkgapp.Res "未登录"
// @Router /api/user/info [get]
func (h *UserHandler) UserInfo(c *gin.Context) {
	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Warn("UserHandler.UserInfo missing uid")
		pkgapp.NewResponse(c).ToResponse(code.ErrorNotUserAuthToken)
		return
	}
	h.session(c, "UserHandler.UserInfo", func(ctx context.Context) (*dto.UserDTO, error) {
		return h.App.UserService.GetInfo(ctx, uid)
	})
}

// bind 绑定并校验参数，失败时已写出响应
func (h *UserHandler) bind(c *gin.Context, op string, params any) bool {
	valid, errs := pkgapp.BindAndValid(c, params)
	if valid {
		return true
	}
	h.App.Logger().Warn(op+" invalid params", zap.Error(errs))
	pkgapp.NewResponse(c).ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
	return false
}

func (h *UserHandler) session(c *gin.Context, op string, fn func(ctx context.Context) (*dto.UserDTO, error)) {
	ctx := c.Request.Context()
	user, err := fn(ctx)
	if err != nil {
		h.logError(ctx, op, err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(user))
}
