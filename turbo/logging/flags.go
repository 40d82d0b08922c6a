package logging

import (
	"github.com/urfave/cli/v2"
)

var (
	LogJsonFlag = cli.BoolFlag{
		Name:  "log.json",
		Usage: "Format console logs with JSON",
	}

	LogConsoleJsonFlag = cli.BoolFlag{
		Name:  "log.console.json",
		Usage: "Format console logs with JSON",
	}

	LogDirJsonFlag = cli.BoolFlag{
		Name:  "log.dir.json",
		Usage: "Format file logs with JSON",
	}

	LogVerbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Usage: "Set the log level for console logs",
		Value: "info",
	}

	LogConsoleVerbosityFlag = cli.StringFlag{
		Name:  "log.console.verbosity",
		Usage: "Set the log level for console logs",
	}

	LogDirPathFlag = cli.StringFlag{
		Name:  "log.dir.path",
		Usage: "Path to store user and error logs to disk",
	}

	LogDirPrefixFlag = cli.StringFlag{
		Name:  "log.dir.prefix",
		Usage: "The file name prefix for logs stored to disk",
	}

	LogDirVerbosityFlag = cli.StringFlag{
		Name:  "log.dir.verbosity",
		Usage: "Set the log verbosity for logs stored to disk",
		Value: "info",
	}

	LogDirMaxSizeFlag = cli.StringFlag{
		Name:  "log.dir.maxsize",
		Usage: "Rotate the log file once it grows beyond this size (e.g. 100MB)",
		Value: "100MB",
	}
)

// Flags lists the logging flags for urfave/cli based binaries.
var Flags = []cli.Flag{
	&LogJsonFlag,
	&LogConsoleJsonFlag,
	&LogDirJsonFlag,
	&LogVerbosityFlag,
	&LogConsoleVerbosityFlag,
	&LogDirPathFlag,
	&LogDirPrefixFlag,
	&LogDirVerbosityFlag,
	&LogDirMaxSizeFlag,
}

// AddFlags registers the same flags on a cobra command.
func AddFlags(flags interface {
	Bool(name string, value bool, usage string) *bool
	String(name string, value string, usage string) *string
}) {
	flags.Bool(LogJsonFlag.Name, false, LogJsonFlag.Usage)
	flags.Bool(LogConsoleJsonFlag.Name, false, LogConsoleJsonFlag.Usage)
	flags.Bool(LogDirJsonFlag.Name, false, LogDirJsonFlag.Usage)
	flags.String(LogVerbosityFlag.Name, LogVerbosityFlag.Value, LogVerbosityFlag.Usage)
	flags.String(LogConsoleVerbosityFlag.Name, "", LogConsoleVerbosityFlag.Usage)
	flags.String(LogDirPathFlag.Name, "", LogDirPathFlag.Usage)
	flags.String(LogDirPrefixFlag.Name, "", LogDirPrefixFlag.Usage)
	flags.String(LogDirVerbosityFlag.Name, LogDirVerbosityFlag.Value, LogDirVerbosityFlag.Usage)
	flags.String(LogDirMaxSizeFlag.Name, LogDirMaxSizeFlag.Value, LogDirMaxSizeFlag.Usage)
}
