package commands

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erraggy/dataresolver/dataerrors"
	"github.com/erraggy/dataresolver/entitystore"
	"github.com/erraggy/dataresolver/internal/cliutil"
	"github.com/erraggy/dataresolver/logging"
	"github.com/erraggy/dataresolver/parser"
)

const (
	envPrefix  = "DATARESOLVER"
	configName = ".dataresolver"
)

// settings is the merged configuration of one command invocation.
// Precedence: flags, then DATARESOLVER_* environment variables, then the
// config file, then flag defaults.
type settings struct {
	v      *viper.Viper
	logger logging.Logger
	stdin  io.Reader
}

// loadSettings builds the settings for cmd. A config file named by --config
// (or DATARESOLVER_CONFIG) must exist; otherwise .dataresolver.yaml is looked
// up in the working directory and the home directory and may be absent.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	explicit := v.GetString("config")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, &dataerrors.ConfigError{Option: "config", Message: "reading config file", Cause: err}
		}
	}

	s := &settings{v: v, logger: logging.NopLogger{}, stdin: cmd.InOrStdin()}
	if v.GetBool("verbose") {
		handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
		s.logger = logging.NewSlogAdapter(slog.New(handler)).With("cmd", cmd.Name())
		if used := v.ConfigFileUsed(); used != "" {
			s.logger.Debug("using config file", "path", used)
		}
	}
	return s, nil
}

// required returns the value of key or a ConfigError naming every place it
// can be set.
func (s *settings) required(key string) (string, error) {
	value := s.v.GetString(key)
	if value == "" {
		return "", &dataerrors.ConfigError{
			Option:  key,
			Message: "required; set --" + key + ", " + envKey(key) + " or " + key + " in " + configName + ".yaml",
		}
	}
	return value, nil
}

// source returns the parser options reading path, or stdin for "-".
func (s *settings) source(path string) []parser.Option {
	if path == StdinFilePath {
		return []parser.Option{
			parser.WithReader(s.stdin),
			parser.WithSourceName(FormatSourcePath(path)),
			parser.WithLogger(s.logger),
		}
	}
	return []parser.Option{parser.WithFilePath(path), parser.WithLogger(s.logger)}
}

// definitions parses the schema document.
func (s *settings) definitions() (*parser.Definitions, error) {
	path, err := s.required("schema")
	if err != nil {
		return nil, err
	}
	return parser.ParseDefinitions(s.source(path)...)
}

// store loads the entities document into memory. Without one the store is
// empty, so every reference by id is unset.
func (s *settings) store() (*entitystore.Memory, error) {
	store := entitystore.NewMemory()
	path := s.v.GetString("entities")
	if path == "" {
		return store, nil
	}
	entities, err := parser.ParseEntities(s.source(path)...)
	if err != nil {
		return nil, err
	}
	store.PutAll(entities)
	s.logger.Debug("loaded entities", "path", FormatSourcePath(path), "count", store.Len())
	return store, nil
}

// format returns the validated output format.
func (s *settings) format() (string, error) {
	format := s.v.GetString("format")
	if err := ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// colors reports whether text written to w is colored.
func (s *settings) colors(w io.Writer) bool {
	return !s.v.GetBool("no-color") && cliutil.IsTerminal(w)
}

// envKey returns the environment variable read for key.
func envKey(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}
