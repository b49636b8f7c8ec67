package model

// ================ Config ================
type ConversationConfig struct {
	TTL     string `envconfig:"CONVERSATION_TTL" default:"12h"`
	Context struct {
		HintTurns     int `envconfig:"CONVERSATION_HINT_TURNS" default:"4"`
		TrimMessages  int `envconfig:"CONVERSATION_TRIM_MESSAGES" default:"6"`
		NoteMessages  int `envconfig:"CONVERSATION_NOTE_MESSAGES" default:"3"`
		ReadTimeoutMS int `envconfig:"CONVERSATION_READ_TIMEOUT_MS" default:"300"`
	}
	Tools struct {
		MaxCalls int `envconfig:"CONVERSATION_TOOL_MAX_CALLS" default:"10"`
	}
}

type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.4"`
}

type AssistantPromptConfig struct {
	BusinessName string `envconfig:"PROMPT_BUSINESS_NAME" default:"CapAmerica"`
	BusinessType string `envconfig:"PROMPT_BUSINESS_TYPE" default:"custom headwear and branded caps"`
}

type ServerConfig struct {
	Host            string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int    `envconfig:"SERVER_PORT" default:"8021"`
	Environment     string `envconfig:"SERVER_ENVIRONMENT" default:"development"`
	ShutdownTimeout int    `envconfig:"SERVER_SHUTDOWN_TIMEOUT_SEC" default:"10"`
}
