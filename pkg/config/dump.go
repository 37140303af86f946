package config

import (
	"github.com/arthur-debert/mvi/pkg/errors"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Dump renders cfg as TOML
func Dump(cfg *Config) (string, error) {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return string(data), nil
}
