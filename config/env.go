package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/joho/godotenv"
	"github.com/oclaw/supportreq/common"
)

const (
	EnvRPCSocket     = "SUPPORTREQ_RPC_SOCKET"
	EnvTelegramToken = "SUPPORTREQ_TELEGRAM_TOKEN"
)

// loadEnv reads the optional .env file located next to the config file.
// Variables already present in the environment win over the file.
func loadEnv(cfg *SupportRequestConfig, dirPath string) error {
	err := godotenv.Load(path.Join(dirPath, ".env"))
	if common.IgnoreErr(err, os.ErrNotExist) != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	if socket := os.Getenv(EnvRPCSocket); socket != "" {
		cfg.RPCSocketName = socket
	}
	return nil
}

// TelegramToken returns the bot token from the environment, falling back
// to the .tg.token file in the config directory.
func TelegramToken() (string, error) {
	if token := strings.TrimSpace(os.Getenv(EnvTelegramToken)); token != "" {
		return token, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	token, err := os.ReadFile(path.Join(dir, appDirName, ".tg.token"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(token)), nil
}
