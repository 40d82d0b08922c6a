package logging

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/c2h5oh/datasize"
	"github.com/ledgerwatch/log/v3"
	"github.com/spf13/cobra"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Settings is the resolved logging configuration of a binary.
type Settings struct {
	FilePrefix   string
	DirPath      string
	ConsoleLevel log.Lvl
	DirLevel     log.Lvl
	ConsoleJson  bool
	DirJson      bool
	MaxSize      datasize.ByteSize
}

// SetupLoggerCtx configures the root logger from urfave/cli flags and
// returns it.
func SetupLoggerCtx(filePrefix string, ctx *cli.Context) log.Logger {
	s := Settings{
		FilePrefix:  filePrefix,
		ConsoleJson: ctx.Bool(LogJsonFlag.Name) || ctx.Bool(LogConsoleJsonFlag.Name),
		DirJson:     ctx.Bool(LogDirJsonFlag.Name),
		DirPath:     ctx.String(LogDirPathFlag.Name),
	}
	if prefix := ctx.String(LogDirPrefixFlag.Name); prefix != "" {
		s.FilePrefix = prefix
	}
	s.ConsoleLevel = consoleLevel(ctx.String(LogConsoleVerbosityFlag.Name), ctx.String(LogVerbosityFlag.Name))
	s.DirLevel = levelOr(ctx.String(LogDirVerbosityFlag.Name), log.LvlInfo)
	s.MaxSize = maxSize(ctx.String(LogDirMaxSizeFlag.Name))
	return initSeparatedLogging(s, os.Stderr)
}

// SetupLoggerCmd is SetupLoggerCtx for cobra commands. Flags must have been
// registered with AddFlags.
func SetupLoggerCmd(filePrefix string, cmd *cobra.Command) log.Logger {
	flags := cmd.Flags()

	logJsonVal, ljerr := flags.GetBool(LogJsonFlag.Name)
	if ljerr != nil {
		logJsonVal = false
	}
	logConsoleJsonVal, lcjerr := flags.GetBool(LogConsoleJsonFlag.Name)
	if lcjerr != nil {
		logConsoleJsonVal = false
	}
	dirJson, djerr := flags.GetBool(LogDirJsonFlag.Name)
	if djerr != nil {
		dirJson = false
	}

	str := func(name string) string {
		v, err := flags.GetString(name)
		if err != nil {
			return ""
		}
		return v
	}

	s := Settings{
		FilePrefix:  filePrefix,
		ConsoleJson: logJsonVal || logConsoleJsonVal,
		DirJson:     dirJson,
		DirPath:     str(LogDirPathFlag.Name),
	}
	if prefix := str(LogDirPrefixFlag.Name); prefix != "" {
		s.FilePrefix = prefix
	}
	s.ConsoleLevel = consoleLevel(str(LogConsoleVerbosityFlag.Name), str(LogVerbosityFlag.Name))
	s.DirLevel = levelOr(str(LogDirVerbosityFlag.Name), log.LvlInfo)
	s.MaxSize = maxSize(str(LogDirMaxSizeFlag.Name))
	return initSeparatedLogging(s, cmd.ErrOrStderr())
}

func consoleLevel(console, verbosity string) log.Lvl {
	lvl, err := tryGetLogLevel(console)
	if err != nil {
		// try verbosity flag
		lvl, err = tryGetLogLevel(verbosity)
		if err != nil {
			lvl = log.LvlInfo
		}
	}
	return lvl
}

func levelOr(s string, def log.Lvl) log.Lvl {
	lvl, err := tryGetLogLevel(s)
	if err != nil {
		return def
	}
	return lvl
}

func maxSize(s string) datasize.ByteSize {
	var size datasize.ByteSize
	if err := size.UnmarshalText([]byte(s)); err != nil || size == 0 {
		return 100 * datasize.MB
	}
	return size
}

func initSeparatedLogging(s Settings, console io.Writer) log.Logger {
	logger := log.Root()

	if s.ConsoleJson {
		logger.SetHandler(log.LvlFilterHandler(s.ConsoleLevel, log.StreamHandler(console, log.JsonFormat())))
	} else if console == os.Stderr {
		logger.SetHandler(log.LvlFilterHandler(s.ConsoleLevel, log.StderrHandler))
	} else {
		logger.SetHandler(log.LvlFilterHandler(s.ConsoleLevel, log.StreamHandler(console, log.TerminalFormatNoColor())))
	}

	if len(s.DirPath) == 0 {
		logger.Debug("no log dir set, console logging only")
		return logger
	}

	err := os.MkdirAll(s.DirPath, 0764)
	if err != nil {
		logger.Warn("failed to create log dir, console logging only", "err", err)
		return logger
	}

	dirFormat := log.TerminalFormatNoColor()
	if s.DirJson {
		dirFormat = log.JsonFormat()
	}

	megabytes := int(s.MaxSize / datasize.MB)
	if megabytes < 1 {
		megabytes = 1
	}
	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(s.DirPath, s.FilePrefix+".log"),
		MaxSize:    megabytes,
		MaxBackups: 3,
		MaxAge:     28, //days
	}
	userLog := log.StreamHandler(rotating, dirFormat)

	mux := log.MultiHandler(logger.GetHandler(), log.LvlFilterHandler(s.DirLevel, userLog))
	logger.SetHandler(mux)
	logger.Info("logging to file system", "log dir", s.DirPath, "file prefix", s.FilePrefix, "log level", s.DirLevel, "json", s.DirJson, "max size", s.MaxSize.HumanReadable())
	return logger
}

func tryGetLogLevel(s string) (log.Lvl, error) {
	lvl, err := log.LvlFromString(s)
	if err != nil {
		l, err := strconv.Atoi(s)
		if err != nil {
			return 0, err
		}
		return log.Lvl(l), nil
	}
	return lvl, nil
}
