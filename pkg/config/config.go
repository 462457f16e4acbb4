// Package config loads the editor's session configuration.
//
// Values come from boardedit.yaml, BOARDEDIT_* environment variables and
// command-line flags bound to the same keys. Each Viper instance is owned
// by its caller; nothing here touches the global Viper.
package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/wesen/boardedit/pkg/geom"
	"github.com/wesen/boardedit/pkg/undo"
)

// Configuration keys.
const (
	KeyRotationStep   = "rotation_step"
	KeyEditChildren   = "edit_children"
	KeyUndoDepth      = "undo_depth"
	KeyAnchorAtOrigin = "anchor_at_origin"
	KeyLogLevel       = "log_level"
	KeyClipboard      = "clipboard"
	KeyImportLayer    = "import.layer"
	KeyImportOrigin   = "import.origin"
	KeyImportLastFile = "import.last_file"
)

const (
	configName = "boardedit"
	envPrefix  = "BOARDEDIT"
	userDir    = "~/.config/boardedit"
)

// Import holds the choices remembered between two imports of a drawing.
type Import struct {
	Layer    string `mapstructure:"layer"`
	Origin   string `mapstructure:"origin"`
	LastFile string `mapstructure:"last_file"`
}

// Session is the configuration handed to an editing session when it is
// activated.
type Session struct {
	// RotationStep is the angle applied by one rotate command.
	RotationStep geom.Angle `mapstructure:"rotation_step"`
	// EditChildren enables editing inside footprints.
	EditChildren bool `mapstructure:"edit_children"`
	UndoDepth    int  `mapstructure:"undo_depth"`
	// AnchorAtOrigin makes every drag grab the first item by its origin.
	AnchorAtOrigin bool   `mapstructure:"anchor_at_origin"`
	LogLevel       string `mapstructure:"log_level"`
	// Clipboard selects the clipboard backend: "system" or "memory".
	Clipboard string `mapstructure:"clipboard"`
	Import    Import `mapstructure:"import"`
}

// Default returns the built-in configuration.
func Default() Session {
	return Session{
		RotationStep: geom.Angle90,
		UndoDepth:    undo.DefaultDepth,
		LogLevel:     "info",
		Clipboard:    "system",
		Import:       Import{Layer: "Dwgs.User", Origin: "page"},
	}
}

// New returns a Viper instance with defaults, environment binding and the
// search path set up. The search path is $BOARDEDIT_CONFIG_PATH, the user
// config directory and the working directory.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyRotationStep, int(d.RotationStep))
	v.SetDefault(KeyEditChildren, d.EditChildren)
	v.SetDefault(KeyUndoDepth, d.UndoDepth)
	v.SetDefault(KeyAnchorAtOrigin, d.AnchorAtOrigin)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyClipboard, d.Clipboard)
	v.SetDefault(KeyImportLayer, d.Import.Layer)
	v.SetDefault(KeyImportOrigin, d.Import.Origin)
	v.SetDefault(KeyImportLastFile, d.Import.LastFile)

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(envPrefix + "_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	if dir, err := homedir.Expand(userDir); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath("./")
	return v
}

// Load reads the config file, if any, and decodes the session. A missing
// file is not an error.
func Load(v *viper.Viper) (Session, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Session{}, errors.Wrap(err, "reading config file")
		}
	}
	return Decode(v)
}

// Decode builds a session from the current values of v.
func Decode(v *viper.Viper) (Session, error) {
	var s Session
	if err := v.Unmarshal(&s); err != nil {
		return Session{}, errors.Wrap(err, "decoding config")
	}
	s.RotationStep = s.RotationStep.Normalize()
	if s.RotationStep == 0 {
		return Session{}, errors.Errorf("%s must not be a multiple of 360°", KeyRotationStep)
	}
	if s.UndoDepth <= 0 {
		s.UndoDepth = undo.DefaultDepth
	}
	return s, nil
}

// Remember stores the import choices of s in v and writes them to the
// config file v was loaded from, or to the user config directory when no
// file was found.
func Remember(v *viper.Viper, s Session) error {
	v.Set(KeyImportLayer, s.Import.Layer)
	v.Set(KeyImportOrigin, s.Import.Origin)
	v.Set(KeyImportLastFile, s.Import.LastFile)

	path := v.ConfigFileUsed()
	if path == "" {
		dir, err := homedir.Expand(userDir)
		if err != nil {
			return errors.Wrap(err, "locating config directory")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "creating config directory")
		}
		path = filepath.Join(dir, configName+".yaml")
	}
	return errors.Wrapf(v.WriteConfigAs(path), "writing %s", path)
}
