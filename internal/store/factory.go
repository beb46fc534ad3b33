package store

import (
	"visitas/internal/types"

	"github.com/sirupsen/logrus"
)

// NewStore selects a backend based on configuration: Redis when REDIS_DSN is
// set, otherwise an in-memory store.
func NewStore(configManager types.ConfigManager) (Store, error) {
	redisDSN := configManager.GetRedisDSN()

	if redisDSN == "" {
		logrus.Info("Using in-memory store")
		return NewMemoryStore(), nil
	}

	logrus.Info("Using Redis store")
	return NewRedisStore(redisDSN)
}
