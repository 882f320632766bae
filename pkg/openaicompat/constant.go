package openaicompat

import "time"

const (
	// QwenBaseURL is the Qwen OpenAI-compatible endpoint
	QwenBaseURL = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"

	// QwenDefaultModel is the default Qwen model
	QwenDefaultModel = "qwen-plus"

	// DeepSeekBaseURL is the DeepSeek API endpoint
	DeepSeekBaseURL = "https://api.deepseek.com/v1"

	// DeepSeekDefaultModel is the default DeepSeek model
	DeepSeekDefaultModel = "deepseek-chat"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 60 * time.Second
)
