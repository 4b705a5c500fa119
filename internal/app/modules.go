package app

import (
	"github.com/vk/fabricgo/internal/registry"
	"github.com/vk/fabricgo/modules/autowire"
	"github.com/vk/fabricgo/modules/configscan"
	"github.com/vk/fabricgo/modules/props"
)

// coreModules is the definitive list of all modules that are compiled into
// the fabricgo binary. The scanner takes its default path from the app
// configuration.
func coreModules(cfg *Config) []registry.Module {
	return []registry.Module{
		&configscan.Module{Path: cfg.ScanPath},
		&props.Module{},
		&autowire.Module{},
	}
}
