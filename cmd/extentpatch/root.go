package main

import (
	"github.com/spf13/cobra"
)

// rootCommand is the extentpatch entry point.
var rootCommand = &cobra.Command{
	Use:          "extentpatch <old> <new> <patch>",
	Short:        "Apply a BSDIFF40 patch, optionally against extent-addressed images",
	Args:         cobra.ExactArgs(3),
	RunE:         applyMain,
	SilenceUsage: true,
}

// rootConfiguration holds the flags accepted by the root command.
var rootConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// oldExtents is the extent specification for the old image, or empty if
	// the old image is a plain contiguous file.
	oldExtents string
	// newExtents is the extent specification for the new image, or empty if
	// the new image is a plain contiguous file.
	newExtents string
	// logLevel names the logging.Level to use (see logging.NameToLevel), or
	// empty to leave the environment-derived default in place.
	logLevel string
	// verbose enables debug-level logging output. It's a shorthand for
	// --log-level debug; it only raises the level, never lowers it.
	verbose bool
}

func init() {
	flags := rootCommand.Flags()
	flags.SortFlags = false

	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.StringVar(&rootConfiguration.oldExtents, "old-extents", "", "Treat the old image as extent-addressed, per the given extent specification")
	flags.StringVar(&rootConfiguration.newExtents, "new-extents", "", "Treat the new image as extent-addressed, per the given extent specification")
	flags.StringVar(&rootConfiguration.logLevel, "log-level", "", "Set the logging level (disabled, error, warn, info, debug, trace)")
	flags.BoolVarP(&rootConfiguration.verbose, "verbose", "v", false, "Enable verbose (debug-level) logging")
}
