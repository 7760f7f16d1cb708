package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobals points the package at a fresh home directory and clears the
// lazily initialized session state.
func resetGlobals(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	logDir = ""
	initErr = nil
	initOnce = sync.Once{}
	sessionID = ""
	sessionIDOnce = sync.Once{}

	return home
}

func TestNewLogger(t *testing.T) {
	home := resetGlobals(t)

	logger, err := NewLogger("bridge")
	require.NoError(t, err)
	defer logger.Close()

	wantDir := filepath.Join(home, ".hud", "logs")
	assert.Equal(t, wantDir, filepath.Dir(logger.LogPath()))
	assert.True(t, strings.HasSuffix(logger.LogPath(), GetSessionID()+"-hud.log"))

	logger.Infof("conduit ready after %d attempts", 1)
	logger.Warnf("dropped %s", "notification")

	data, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[bridge] [INFO] conduit ready after 1 attempts")
	assert.Contains(t, content, "[bridge] [WARN] dropped notification")
}

func TestNewLogger_SharesSessionFile(t *testing.T) {
	resetGlobals(t)

	first, err := NewLogger("tui")
	require.NoError(t, err)
	defer first.Close()

	second, err := NewLogger("runtime")
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, first.LogPath(), second.LogPath())
	assert.Equal(t, first.SessionID(), second.SessionID())
}

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("router", &buf)

	logger.Debugf("routed %s", "callback")
	logger.Errorf("desync: %v", "no closing overlay")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[router] [DEBUG] routed callback")
	assert.Contains(t, lines[1], "[router] [ERROR] desync: no closing overlay")
	assert.Empty(t, logger.LogPath())
}

func TestWith_SharesDestination(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWriterLogger("hud", &buf)
	child := parent.With("sim")

	child.Infof("spawned %d", 3)

	assert.Contains(t, buf.String(), "[sim] [INFO] spawned 3")
	assert.Equal(t, parent.SessionID(), child.SessionID())
}

func TestNilLoggerIsSilent(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Infof("nothing")
	})
}

func TestConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("bridge", &buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Debugf("submit %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 20)
}

func TestClose_Idempotent(t *testing.T) {
	resetGlobals(t)

	logger, err := NewLogger("close")
	require.NoError(t, err)

	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}
