package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mvi/pkg/errors"
	"github.com/arthur-debert/mvi/pkg/logging"
	"github.com/arthur-debert/mvi/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables read as configuration
const EnvPrefix = "MVI_"

// UserConfigNames are looked up, in order, inside the config directory
var UserConfigNames = []string{"config.toml", "config.yaml", "config.yml"}

// LoadOptions selects the optional layers of Load
type LoadOptions struct {
	// ConfigDir overrides paths.ConfigDir()
	ConfigDir string

	// ConfigFile is an explicit file that must exist
	ConfigFile string

	// Overrides are flat dotted keys set from command-line flags
	Overrides map[string]interface{}
}

// Load builds the configuration from, lowest to highest precedence: the
// embedded defaults, the user config file, opts.ConfigFile, MVI_*
// environment variables and opts.Overrides.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Load embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Load user config if it exists
	dir := opts.ConfigDir
	if dir == "" {
		dir = paths.ConfigDir()
	}
	for _, name := range UserConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		logger.Debug().Str("file", path).Msg("loaded user config")
		break
	}

	// 3. Load explicit config file
	if opts.ConfigFile != "" {
		// --config=~/x reaches us unexpanded by the shell
		file := paths.ExpandHome(opts.ConfigFile)
		if _, err := os.Stat(file); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", file).
				WithDetail("file", file)
		}
		if err := loadFile(k, file); err != nil {
			return nil, err
		}
		logger.Debug().Str("file", file).Msg("loaded config file")
	}

	// 4. Load env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Load flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply flag overrides")
		}
	}

	// 6. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps MVI_SECTION_SOME_KEY to section.some_key
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("file", path)
	}
	return nil
}
