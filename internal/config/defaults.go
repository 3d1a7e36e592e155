package config

const (
	defaultToolBinary = "audible-util"
	defaultBarWidth   = 40
	defaultColorMode  = "auto"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tool: Tool{
			Binary: defaultToolBinary,
		},
		Display: Display{
			BarWidth: defaultBarWidth,
			Color:    defaultColorMode,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
