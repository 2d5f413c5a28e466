package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mutagen-io/extentpatch/pkg/bsdiff"
	"github.com/mutagen-io/extentpatch/pkg/cmd"
	"github.com/mutagen-io/extentpatch/pkg/logging"
)

// applyMain is the root command's entry point.
func applyMain(command *cobra.Command, arguments []string) error {
	level := logging.CurrentLevel
	if rootConfiguration.logLevel != "" {
		parsed, ok := logging.NameToLevel(rootConfiguration.logLevel)
		if !ok {
			return errors.Errorf("unknown log level: %s", rootConfiguration.logLevel)
		}
		level = parsed
	}
	if rootConfiguration.verbose && level < logging.LevelDebug {
		level = logging.LevelDebug
	}
	logging.SetLevel(level)

	// pkg/cmd silences the standard logger by default, since this core has
	// no daemon to redirect it to a log file. Any level above disabled
	// restores it so that logging.RootLogger's diagnostics from pkg/bsdiff
	// actually reach the terminal.
	if level > logging.LevelDisabled {
		log.SetOutput(os.Stderr)
	}

	oldPath, newPath, patchPath := arguments[0], arguments[1], arguments[2]

	statusLine := &cmd.StatusLinePrinter{}
	statusLine.Print("Applying patch...")
	err := bsdiff.ApplyPatch(
		oldPath, newPath, patchPath,
		rootConfiguration.oldExtents, rootConfiguration.newExtents,
		logging.RootLogger,
	)
	statusLine.Clear()
	if err != nil {
		return err
	}

	if rootConfiguration.newExtents == "" {
		if info, err := os.Stat(newPath); err == nil {
			fmt.Printf("Applied %s: wrote %s to %s\n", patchPath, humanize.Bytes(uint64(info.Size())), newPath)
			return nil
		}
	}

	fmt.Printf("Applied %s to %s\n", patchPath, newPath)
	return nil
}
