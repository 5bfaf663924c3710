package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar       = "PORT"
	appNameVar       = "APP_NAME"
	apiBaseURLVar    = "API_BASE_URL"
	callbackURLVar   = "CALLBACK_URL"
	dataFolderVar    = "DATA_FOLDER"
	credentialKeyVar = "CREDENTIALS_KEY"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "5173")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "MindMate")
}

// GetAPIBaseURL returns the MindMate backend base URL. Read once at startup;
// there is no default because every request depends on it.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8000")
}

// GetCallbackURL is where the identity provider redirects back to. It must match
// the redirect URI registered with the backend's OAuth configuration.
func (e EnvVars) GetCallbackURL() string {
	return GetEnv(callbackURLVar, "http://localhost"+e.GetPort()+"/callback")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetDataFolder() string {
	return GetEnv(dataFolderVar, "./data")
}

// GetCredentialsKey returns the hex-encoded 32-byte key used to encrypt the
// credential file at rest. Empty means the file is stored unencrypted.
func (Storage) GetCredentialsKey() string {
	return GetEnv(credentialKeyVar, "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
