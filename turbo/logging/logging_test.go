package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/ledgerwatch/log/v3"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestTryGetLogLevel(t *testing.T) {
	lvl, err := tryGetLogLevel("debug")
	require.NoError(t, err)
	require.Equal(t, log.LvlDebug, lvl)

	lvl, err = tryGetLogLevel("2")
	require.NoError(t, err)
	require.Equal(t, log.Lvl(2), lvl)

	_, err = tryGetLogLevel("loud")
	require.Error(t, err)

	require.Equal(t, log.LvlWarn, consoleLevel("", "warn"))
	require.Equal(t, log.LvlError, consoleLevel("error", "warn"))
	require.Equal(t, log.LvlInfo, consoleLevel("", ""))
}

func TestMaxSize(t *testing.T) {
	require.Equal(t, 10*datasize.MB, maxSize("10MB"))
	require.Equal(t, 100*datasize.MB, maxSize("garbage"))
	require.Equal(t, 100*datasize.MB, maxSize(""))
}

func TestSetupLoggerCmd(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	cmd := &cobra.Command{Use: "test"}
	AddFlags(cmd.Flags())
	cmd.SetErr(&out)
	require.NoError(t, cmd.Flags().Set(LogDirPathFlag.Name, dir))
	require.NoError(t, cmd.Flags().Set(LogConsoleVerbosityFlag.Name, "warn"))

	logger := SetupLoggerCmd("unit", cmd)
	logger.Info("hidden on console")
	logger.Warn("visible", "k", "v")
	require.Contains(t, out.String(), "visible")
	require.NotContains(t, out.String(), "hidden on console")

	data, err := os.ReadFile(filepath.Join(dir, "unit.log"))
	require.NoError(t, err)
	require.Contains(t, string(data), "hidden on console")
}
