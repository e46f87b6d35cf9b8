package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewRedisClientWithoutRedis(t *testing.T) {
	assert.Nil(t, NewRedisClient(&Config{}, zap.NewNop()))
	assert.Nil(t, NewRedisClient(&Config{RedisURL: "::not a url"}, zap.NewNop()))
	assert.Nil(t, NewRedisClient(&Config{RedisAddr: "127.0.0.1:1"}, zap.NewNop()))
}
