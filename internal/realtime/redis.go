package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates a client for addr and checks that the server answers.
func NewRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	slog.Info("redis connected", "addr", addr)
	return rdb, nil
}

// Channel is the pub/sub channel carrying userID's notifications.
func Channel(userID uint) string {
	return fmt.Sprintf("notifications:%d", userID)
}
