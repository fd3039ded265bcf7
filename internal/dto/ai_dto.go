package dto

// AssistRequest /ai-assist request body
// AssistRequest /ai-assist 请求体
type AssistRequest struct {
	Action  string `json:"action"`
	Content string `json:"content"`
}

// AssistResponse /ai-assist success body
// AssistResponse /ai-assist 成功响应
type AssistResponse struct {
	Result string `json:"result"`
}

// AssistErrorResponse /ai-assist failure body
// AssistErrorResponse /ai-assist 失败响应
type AssistErrorResponse struct {
	Error string `json:"error"`
}
