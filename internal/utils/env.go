package utils

import (
	"os"
	"strconv"

	"github.com/fastwise/tutr-backend/internal/logger"
)

// GetEnv reads key from the environment, falling back to defaultVal when it
// is unset.
func GetEnv(key, defaultVal string, log *logger.Logger) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		log.Debug("Environment variable not set, using default", "env_var", key, "default", defaultVal)
		return defaultVal
	}
	return val
}

// GetEnvAsInt is GetEnv for integer values; an unset or unparseable value
// falls back to defaultVal.
func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		log.Debug("Environment variable not set, using default", "env_var", key, "default", defaultVal)
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Warn("Environment variable is not an integer, using default", "env_var", key, "value", val, "default", defaultVal)
		return defaultVal
	}
	return i
}
