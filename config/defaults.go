package config

import "time"

// DefaultConfig returns the full default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server:       DefaultServerConfig(),
		Conversation: DefaultConversationConfig(),
		Store:        DefaultStoreConfig(),
		Database:     DefaultDatabaseConfig(),
		LLM:          DefaultLLMConfig(),
		Log:          DefaultLogConfig(),
		Telemetry:    DefaultTelemetryConfig(),
	}
}

// DefaultServerConfig returns the default HTTP server settings.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTPPort:        8080,
		MetricsPort:     9091,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    60 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		RateLimitRPS:    10,
		RateLimitBurst:  20,
	}
}

// DefaultConversationConfig returns the default conversation limits.
func DefaultConversationConfig() ConversationConfig {
	return ConversationConfig{
		MaxMessageLength:      800,
		MaxAgentMessageLength: 800,
		MaxHistoryLength:      100,
	}
}

// DefaultStoreConfig returns the in-memory conversation log backend.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Type:  "memory",
		Redis: DefaultRedisConfig(),
	}
}

// DefaultRedisConfig returns the default Redis settings.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:      "localhost:6379",
		Password:  "",
		DB:        0,
		PoolSize:  10,
		KeyPrefix: "chathy:",
	}
}

// DefaultDatabaseConfig returns the default registry database settings.
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Path:            "chathy.db",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
		SeedDefaults:    true,
	}
}

// DefaultLLMConfig returns the default completion provider settings.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Provider: "mistral",
		APIKey:   "",
		BaseURL:  "",
		Model:    "mistral-small-latest",
		Timeout:  30 * time.Second,
	}
}

// DefaultLogConfig returns the default logging settings.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{"stdout"},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}

// DefaultTelemetryConfig returns the default tracing settings.
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "chathy",
		SampleRate:   0.1,
	}
}
