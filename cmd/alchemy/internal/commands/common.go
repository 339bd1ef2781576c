package commands

import (
	"fmt"

	"github.com/Harshal6927/advanced-alchemy/config"
	"github.com/Harshal6927/advanced-alchemy/logger"
)

// Version is the release version reported by the version command
const Version = "0.1.0"

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}
