package code

var (
	Failed  = NewError(0, lang{en: "Failed", zh_cn: "失败"})
	Success = NewSuss(1, lang{en: "Success", zh_cn: "成功"})

	SuccessCreate = NewSuss(2, lang{en: "Created successfully", zh_cn: "创建成功"})
	SuccessUpdate = NewSuss(3, lang{en: "Updated successfully", zh_cn: "更新成功"})
	SuccessDelete = NewSuss(4, lang{en: "Deleted successfully", zh_cn: "删除成功"})

	// 通用错误 400-499
	ErrorServerInternal       = NewError(400, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorNotFoundAPI          = NewError(404, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorInvalidParams        = NewError(405, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorTooManyRequests      = NewError(406, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorNotUserAuthToken     = NewError(407, lang{en: "Authentication required, please sign in", zh_cn: "需要登录认证"})
	ErrorInvalidUserAuthToken = NewError(408, lang{en: "Invalid or expired token, please sign in again", zh_cn: "Token 无效或已过期，请重新登录"})
	ErrorTokenGenerate        = NewError(409, lang{en: "Failed to generate token", zh_cn: "Token 生成失败"})
	ErrorDBQuery              = NewError(410, lang{en: "Database query failed", zh_cn: "数据库查询失败"})
	ErrorRequestTimeout       = NewError(411, lang{en: "Request timeout", zh_cn: "请求超时"})
	ErrorServerBusy           = NewError(412, lang{en: "Server is busy, please try again later", zh_cn: "服务繁忙，请稍后再试"})

	// 用户 500-549
	ErrorUserRegisterIsDisable   = NewError(500, lang{en: "User registration is disabled", zh_cn: "用户注册已关闭"})
	ErrorUserUsernameNotValid    = NewError(501, lang{en: "Username must be 3-20 letters, digits or underscores", zh_cn: "用户名须为 3-20 位字母、数字或下划线"})
	ErrorUserPasswordNotMatch    = NewError(502, lang{en: "Passwords do not match", zh_cn: "两次输入的密码不一致"})
	ErrorUserEmailAlreadyExists  = NewError(503, lang{en: "Email already registered", zh_cn: "邮箱已被注册"})
	ErrorUserAlreadyExists       = NewError(504, lang{en: "Username already exists", zh_cn: "用户名已存在"})
	ErrorPasswordNotValid        = NewError(505, lang{en: "Password is not valid", zh_cn: "密码不合法"})
	ErrorUserRegister            = NewError(506, lang{en: "User registration failed", zh_cn: "用户注册失败"})
	ErrorUserLoginPasswordFailed = NewError(507, lang{en: "Incorrect username or password", zh_cn: "用户名或密码错误"})
	ErrorUserNotFound            = NewError(508, lang{en: "User not found", zh_cn: "用户不存在"})

	// 笔记 550-599
	ErrorNoteNotFound       = NewError(550, lang{en: "Note not found", zh_cn: "笔记不存在"})
	ErrorNoteGetFailed      = NewError(551, lang{en: "Failed to load notes", zh_cn: "获取笔记失败"})
	ErrorNoteCreateFailed   = NewError(552, lang{en: "Failed to create note", zh_cn: "创建笔记失败"})
	ErrorNoteUpdateFailed   = NewError(553, lang{en: "Failed to save note", zh_cn: "保存笔记失败"})
	ErrorNoteDeleteFailed   = NewError(554, lang{en: "Failed to delete note", zh_cn: "删除笔记失败"})
	ErrorNotePreviewFailed  = NewError(555, lang{en: "Failed to render preview", zh_cn: "预览渲染失败"})
	ErrorNoteWriteQueueFull = NewError(556, lang{en: "Too many pending writes, please retry", zh_cn: "写入队列已满，请重试"})
)
