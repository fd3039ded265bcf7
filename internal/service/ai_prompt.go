package service

// Assist actions
// AI 助手动作
const (
	AssistActionGenerate  = "generate"
	AssistActionExpand    = "expand"
	AssistActionSummarize = "summarize"
	AssistActionImprove   = "improve"
)

// assistPrompt system instruction plus the prefix put before the user content
// assistPrompt 系统提示词与用户内容前缀
type assistPrompt struct {
	system     string
	userPrefix string
}

var assistPrompts = map[string]assistPrompt{
	AssistActionGenerate: {
		system: "You are a helpful writing assistant. Generate well-structured markdown content based on the user's request. Use proper markdown formatting with headers, lists, and emphasis where appropriate.",
	},
	AssistActionExpand: {
		system:     "You are a helpful writing assistant. Expand and elaborate on the given text while maintaining its core message. Add relevant details, examples, and context. Return the expanded version in markdown format.",
		userPrefix: "Expand this text:\n\n",
	},
	AssistActionSummarize: {
		system:     "You are a helpful writing assistant. Create a concise summary of the given text while preserving key points. Use markdown formatting for clarity.",
		userPrefix: "Summarize this text:\n\n",
	},
	AssistActionImprove: {
		system:     "You are a helpful writing assistant. Improve the given text by enhancing clarity, grammar, and style while maintaining the original meaning. Return the improved version in markdown format.",
		userPrefix: "Improve this text:\n\n",
	},
}

// IsAssistAction reports whether action is one of the four supported actions
// IsAssistAction 是否为支持的动作
func IsAssistAction(action string) bool {
	_, ok := assistPrompts[action]
	return ok
}

// BuildAssistPrompt returns the system and user messages for action
// BuildAssistPrompt 返回动作对应的系统消息与用户消息
func BuildAssistPrompt(action, content string) (system, user string, ok bool) {
	p, ok := assistPrompts[action]
	if !ok {
		return "", "", false
	}
	return p.system, p.userPrefix + content, true
}
