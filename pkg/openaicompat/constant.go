package openaicompat

const (
	KindAzure    = "azure"
	KindOpenAI   = "openai"
	KindDeepSeek = "deepseek"

	DefaultAzureAPIVersion = "2024-08-01-preview"
	DefaultDeepSeekBaseURL = "https://api.deepseek.com/v1"
	DefaultDeepSeekModel   = "deepseek-chat"
	DefaultOpenAIModel     = "gpt-4o-mini"
)
