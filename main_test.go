package main

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenWithFallback(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	busyPort := busy.Addr().(*net.TCPAddr).Port

	l, err := listenWithFallback("127.0.0.1:"+strconv.Itoa(busyPort), 5)
	if err != nil {
		t.Skipf("no neighbouring free port: %v", err)
	}
	defer l.Close()
	assert.NotEqual(t, busyPort, l.Addr().(*net.TCPAddr).Port)
}

func TestListenWithFallback_SingleAttempt(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	_, err = listenWithFallback(busy.Addr().String(), 1)
	assert.Error(t, err)
}

func TestListenWithFallback_BadAddr(t *testing.T) {
	_, err := listenWithFallback("not-an-addr", 3)
	assert.Error(t, err)
}
