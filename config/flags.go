package config

import "flag"

// Flags holds the command-line overrides. Zero values leave the loaded
// config untouched.
type Flags struct {
	Config     string
	Level      string
	Debug      bool
	Watch      bool
	Fullscreen bool
	Width      int
	Height     int
	LogLevel   string
}

// BindFlags registers the overrides on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.Level, "level", "", "Level to load")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug draws and debug logging")
	fs.BoolVar(&f.Watch, "watch", false, "Reload prefabs and levels when they change on disk")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	return f
}

func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Level != "" {
		cfg.Game.Level = f.Level
	}
	if f.Debug {
		cfg.Game.Debug = true
		cfg.Logging.Level = "debug"
	}
	if f.LogLevel != "" {
		cfg.Logging.Level = f.LogLevel
	}
	if f.Watch {
		cfg.Dev.WatchPrefabs = true
	}
	if f.Fullscreen {
		cfg.Window.Fullscreen = true
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
}
