package shell

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	NopLogger
	infos []string
}

func (r *recordingLogger) Info(msg string, keysAndValues ...interface{}) {
	r.infos = append(r.infos, msg)
}

func TestManager_Logging(t *testing.T) {
	logger := &recordingLogger{}
	manager, err := NewManager(Config{
		Fs:     afero.NewMemMapFs(),
		Env:    MapEnvironment{EnvHome: testHome, EnvShell: "/bin/bash"},
		Logger: logger,
	})
	require.NoError(t, err)

	_, err = manager.AddToPath(context.Background(), toolDir, SetupOptions{})
	require.NoError(t, err)
	_, err = manager.RemoveFromPath(context.Background(), toolDir, SetupOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"appended line to rc file", "removed line from rc file"}, logger.infos)
}

func TestLoggerOrNop(t *testing.T) {
	assert.Equal(t, NopLogger{}, loggerOrNop(nil))

	logger := &recordingLogger{}
	assert.Same(t, logger, loggerOrNop(logger))
}
