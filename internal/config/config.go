package config

import "github.com/joho/godotenv"

type Config interface {
	EnvConfig
	StorageConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetAPIBaseURL() string
	GetCallbackURL() string
	GetEnv() string
}

type StorageConfig interface {
	GetDataFolder() string
	GetCredentialsKey() string
}

type mainConfig struct {
	EnvVars
	Storage
}

func New() Config {
	_ = godotenv.Load()
	return mainConfig{}
}
