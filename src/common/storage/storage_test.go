package storage

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRedis_SingleNode(t *testing.T) {
	mr := miniredis.RunT(t)
	log, _ := test.NewNullLogger()

	cfg := DefaultRedisConfig()
	cfg.Addr = mr.Addr()
	rdb, err := OpenRedis(cfg, log)
	require.NoError(t, err)
	defer rdb.Close()

	require.NoError(t, rdb.Set(t.Context(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestOpenRedis_GivesUp(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	log, hook := test.NewNullLogger()

	cfg := DefaultRedisConfig()
	cfg.Addr = addr
	cfg.MaxRetries = 1
	_, err := OpenRedis(cfg, log)

	assert.ErrorContains(t, err, "after 1 retries")
	assert.Len(t, hook.AllEntries(), 1) // only the mode line, no retry sleep
}

func TestOpenMySQL_InvalidDSN(t *testing.T) {
	log, _ := test.NewNullLogger()

	_, err := OpenMySQL("not a dsn", log)

	assert.ErrorContains(t, err, "invalid mysql dsn")
}
