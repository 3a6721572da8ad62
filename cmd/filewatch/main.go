package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/fatih/color"

	"github.com/mattn/go-isatty"

	"github.com/pkg/errors"

	"github.com/filewatch-io/filewatch/cmd"

	"github.com/filewatch-io/filewatch/pkg/encoding"
	"github.com/filewatch-io/filewatch/pkg/filewatch"
	"github.com/filewatch-io/filewatch/pkg/identifier"
	"github.com/filewatch-io/filewatch/pkg/logging"
	"github.com/filewatch-io/filewatch/pkg/watching"
)

// eventColors maps events onto their display colors.
var eventColors = map[watching.Event]*color.Color{
	watching.EventAdded:      color.New(color.FgGreen),
	watching.EventRemoved:    color.New(color.FgRed),
	watching.EventModified:   color.New(color.FgYellow),
	watching.EventRenamedOld: color.New(color.FgCyan),
	watching.EventRenamedNew: color.New(color.FgCyan),
}

// newPrintingHandler creates an event handler that prints events to standard
// output, prefixing them with the watched path if labeling is requested.
func newPrintingHandler(path string, labeled bool) watching.EventHandler {
	return func(name string, event watching.Event) {
		tag := eventColors[event].Sprintf("%-18s", event)
		if labeled {
			fmt.Printf("%s: %s %s\n", path, tag, name)
		} else {
			fmt.Printf("%s %s\n", tag, name)
		}
	}
}

// stopWatchers stops the specified watchers, reporting any failures as
// warnings on standard error.
func stopWatchers(watchers []*watching.Watcher) {
	for _, watcher := range watchers {
		if err := watcher.Stop(); err != nil {
			cmd.Warning(fmt.Sprintf("unable to stop watcher: %v", err))
		}
	}
}

// rootMain is the entry point for the root command.
func rootMain(_ *cobra.Command, arguments []string) error {
	// Disable colorized output if standard output isn't a terminal.
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	// Start with command line values and then merge in any configuration
	// file values. Command line values take precedence.
	paths := arguments
	ignores := rootConfiguration.ignore
	levelName := rootConfiguration.logLevel
	if rootConfiguration.configuration != "" {
		var configuration watchConfiguration
		if err := encoding.LoadAndUnmarshalYAML(rootConfiguration.configuration, &configuration); err != nil {
			return errors.Wrap(err, "unable to load configuration file")
		}
		if len(paths) == 0 {
			paths = configuration.Paths
		}
		ignores = append(configuration.Ignore, ignores...)
		if levelName == "" {
			levelName = configuration.LogLevel
		}
	}
	if len(paths) == 0 {
		return errors.New("no paths specified")
	}

	// Create the logger.
	if levelName == "" {
		levelName = "info"
	}
	level, ok := logging.NameToLevel(levelName)
	if !ok {
		return errors.Errorf("invalid log level: %s", levelName)
	}
	logger := logging.NewLogger(level)

	// Compile the ignore filter.
	filter, err := compileFilter(ignores)
	if err != nil {
		return err
	}

	// Establish a watch for each path. Paths are only labeled in the output
	// when more than one is being watched.
	labeled := len(paths) > 1
	var watchers []*watching.Watcher
	for _, path := range paths {
		id, err := identifier.New(identifier.PrefixWatcher)
		if err != nil {
			stopWatchers(watchers)
			return errors.Wrap(err, "unable to generate watcher identifier")
		}
		watcher, err := watching.NewFilteredWatcher(
			path,
			newPrintingHandler(path, labeled),
			filter,
			logger.Sublogger(id),
		)
		if err != nil {
			stopWatchers(watchers)
			return errors.Wrapf(err, "unable to watch %s", path)
		}
		watchers = append(watchers, watcher)
		logger.Debugf("watching %s as %s", path, id)
	}

	// Wait for a termination signal and then stop all watchers, blocking
	// until their resources have been released.
	signalTermination := make(chan os.Signal, 1)
	signal.Notify(signalTermination, cmd.TerminationSignals...)
	<-signalTermination
	stopWatchers(watchers)

	// Success.
	return nil
}

// rootCommand is the root command.
var rootCommand = &cobra.Command{
	Use:           "filewatch [flags] <path> [<path>...]",
	Version:       filewatch.Version,
	Short:         "Watch files or directories and print change events",
	RunE:          rootMain,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// rootConfiguration stores configuration for the root command.
var rootConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// ignore stores ignore patterns for event exclusion.
	ignore []string
	// logLevel stores the name of the logging level to use.
	logLevel string
	// configuration stores the path of a YAML configuration file.
	configuration string
}

func init() {
	// Disable Cobra's command sorting behavior. By default, it sorts
	// commands alphabetically in the help output.
	cobra.EnableCommandSorting = false

	// Set the template used by the version flag.
	rootCommand.SetVersionTemplate("filewatch version {{ .Version }}\n")

	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")

	// Wire up watching flags.
	flags.StringSliceVarP(&rootConfiguration.ignore, "ignore", "i", nil, "Exclude names matching the specified pattern (may be repeated)")
	flags.StringVarP(&rootConfiguration.logLevel, "log-level", "l", "", "Set the log level (disabled|error|warn|info|debug|trace, default info)")
	flags.StringVarP(&rootConfiguration.configuration, "config", "c", "", "Load paths and options from the specified YAML file")
}

func main() {
	// Execute the root command and treat any error as fatal.
	if err := rootCommand.Execute(); err != nil {
		cmd.Fatal(err)
	}
}
