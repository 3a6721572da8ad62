package main

// watchConfiguration represents a YAML-based watch configuration file.
type watchConfiguration struct {
	// Paths are the paths to watch.
	Paths []string `yaml:"paths"`
	// Ignore are patterns whose matching names are excluded from events.
	Ignore []string `yaml:"ignore"`
	// LogLevel is the name of the logging level to use.
	LogLevel string `yaml:"logLevel"`
}
