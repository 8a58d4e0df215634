package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	appconfig "github.com/Elon7069/asha-didi-backend/internal/config"
	"github.com/Elon7069/asha-didi-backend/pkg/logging"
)

func TestBuildLLMClientWithoutCredentials(t *testing.T) {
	cfg := &appconfig.Config{}

	llm := buildLLMClient(t.Context(), cfg, logging.New("error"))

	assert.Nil(t, llm)
}

func TestBuildRedisClient(t *testing.T) {
	cfg := &appconfig.Config{RedisAddr: "localhost:6379", RedisTLS: true}

	client := buildRedisClient(cfg)

	assert.NotNil(t, client)
	assert.Equal(t, "localhost:6379", client.Options().Addr)
	assert.NotNil(t, client.Options().TLSConfig)
}
