package main

import (
	"os"

	"github.com/mutagen-io/extentpatch/pkg/cmd"
	"github.com/mutagen-io/extentpatch/pkg/patcherror"
)

func main() {
	rootCommand.SilenceErrors = true

	if err := rootCommand.Execute(); err != nil {
		cmd.Error(err)
		os.Exit(exitCodeForKind(patcherror.KindOf(err)))
	}
}
