package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nfeintake/internal/config"
)

func TestRun_UnreachableDatabaseIsReturned(t *testing.T) {
	cfg := &config.Config{
		DB: config.DBConfig{
			Host:    "127.0.0.1",
			Port:    1,
			User:    "nfeintake",
			Name:    "nfeintake_db",
			SSLMode: "disable",
			MaxOpen: 1,
			MaxIdle: 1,
		},
	}

	err := run(cfg, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
}
