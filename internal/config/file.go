package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/cli-launcher/internal/layout"
)

// fileConfig is the shape of config.toml.
//
//	[store]
//	backend = "sqlite"
//
//	[host]
//	mode = "tmux"
//	terminal = ["kitty", "-e"]
//	[host.commands]
//	claude = "claude --continue"
//
//	[ui]
//	poll_interval = "5s"
//	[ui.sizes.git]
//	width = 120
//	height = 40
type fileConfig struct {
	Store struct {
		Backend string `toml:"backend"`
		Path    string `toml:"path"`
	} `toml:"store"`
	Host struct {
		Mode     string            `toml:"mode"`
		Socket   string            `toml:"socket"`
		Terminal []string          `toml:"terminal"`
		Commands map[string]string `toml:"commands"`
	} `toml:"host"`
	UI struct {
		Footer       bool                   `toml:"footer"`
		Verbose      bool                   `toml:"verbose"`
		PollInterval string                 `toml:"poll_interval"`
		StartTab     string                 `toml:"start_tab"`
		Sizes        map[string]layout.Size `toml:"sizes"`
	} `toml:"ui"`
	Logging struct {
		File  string `toml:"file"`
		Trace bool   `toml:"trace"`
	} `toml:"logging"`

	path    string
	defined *toml.MetaData
}

// readFile decodes path. A missing file is only an error when the path was
// named explicitly.
func readFile(path string, explicit bool) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fileConfig{}, fmt.Errorf("config file %s: unknown key %s", path, undecoded[0])
	}
	cfg.path = path
	cfg.defined = &md
	return cfg, nil
}

func (c fileConfig) has(key ...string) bool {
	return c.defined != nil && c.defined.IsDefined(key...)
}

func (c fileConfig) sizes() map[layout.Tab]layout.Size {
	if len(c.UI.Sizes) == 0 {
		return nil
	}
	out := make(map[layout.Tab]layout.Size, len(c.UI.Sizes))
	for name, size := range c.UI.Sizes {
		out[layout.Tab(name)] = size
	}
	return out
}
