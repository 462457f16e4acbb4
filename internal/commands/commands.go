// Package commands builds the boardedit command line.
package commands

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wesen/boardedit/pkg/config"
)

// app is shared by the subcommands. PersistentPreRunE fills it in.
type app struct {
	v       *viper.Viper
	session config.Session
	logger  *log.Logger
	logFile *os.File
}

// New returns the root command. Without a subcommand it opens the editor.
func New() *cobra.Command {
	return newRoot(&app{v: config.New()})
}

func newRoot(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boardedit",
		Short: "Move, rotate, flip and edit the items of a PCB layout in the terminal.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUI()
		},
	}
	addSessionFlags(cmd, a.v)

	AddCommands(cmd, a)
	return cmd
}

// AddCommands registers every subcommand on topLevel.
func AddCommands(topLevel *cobra.Command, a *app) {
	addUI(topLevel, a)
	addScript(topLevel, a)
	addList(topLevel, a)
	addSettings(topLevel, a)
	addRender(topLevel, a)
}

// addSessionFlags binds persistent flags to the configuration keys, so a
// flag overrides the config file and the environment.
func addSessionFlags(cmd *cobra.Command, v *viper.Viper) {
	f := cmd.PersistentFlags()
	f.Int(config.KeyRotationStep, 900, "rotation step in tenths of a degree")
	f.Bool(config.KeyEditChildren, false, "pick and edit the items inside footprints")
	f.Int(config.KeyUndoDepth, 0, "number of undo levels kept")
	f.Bool(config.KeyAnchorAtOrigin, false, "grab dragged items by their origin")
	f.String(config.KeyLogLevel, "info", "log level: debug, info, warn or error")
	f.String(config.KeyClipboard, "system", "clipboard backend: system or memory")
	f.String("log-file", "", "write logs to this file")

	for _, key := range []string{
		config.KeyRotationStep,
		config.KeyEditChildren,
		config.KeyUndoDepth,
		config.KeyAnchorAtOrigin,
		config.KeyLogLevel,
		config.KeyClipboard,
	} {
		_ = v.BindPFlag(key, f.Lookup(key))
	}
	_ = v.BindPFlag("log_file", f.Lookup("log-file"))
}

// load reads the configuration and sets up logging. Logs go to the log
// file when one is given, to stderr otherwise.
func (a *app) load(stderr io.Writer) error {
	s, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.session = s

	out := stderr
	if path := a.v.GetString("log_file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrapf(err, "opening log file %s", path)
		}
		a.logFile = f
		out = f
	}
	a.logger = log.NewWithOptions(out, log.Options{ReportTimestamp: true, Prefix: "boardedit"})
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid %s", config.KeyLogLevel)
	}
	a.logger.SetLevel(level)
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("config loaded", "file", used)
	}
	return nil
}

// close releases the log file opened by load.
func (a *app) close() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return errors.Wrap(err, "closing log file")
}
