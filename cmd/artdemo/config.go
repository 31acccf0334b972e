package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gnustep/libs-back/fontinfo"
	"github.com/gnustep/libs-back/pixfmt"
)

// config holds the demo settings. A TOML file may set any of them:
//
//	width = 800
//	height = 600
//	layout = "16-b5g6r5"
//	shared_memory = false
//	font_mode = "mono"
type config struct {
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
	Output       string  `toml:"output"`
	Layout       string  `toml:"layout"`
	SharedMemory bool    `toml:"shared_memory"`
	Text         string  `toml:"text"`
	FontSize     float64 `toml:"font_size"`
	FontMode     string  `toml:"font_mode"`
}

func defaultConfig() config {
	return config{
		Width:        640,
		Height:       480,
		Output:       "artdemo.png",
		Layout:       pixfmt.Layout32BGRA.String(),
		SharedMemory: true,
		Text:         "GNUstep back",
		FontSize:     28,
		FontMode:     fontinfo.Antialias.String(),
	}
}

// loadConfig overlays the settings in the TOML file at path onto c.
func loadConfig(path string, c *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}
