package main

import (
	"github.com/mutagen-io/extentpatch/pkg/patcherror"
)

// exitCodeForKind maps a patcherror.Kind to a process exit code, so that
// scripts driving extentpatch can discriminate failure classes (e.g.
// distinguishing a corrupt patch from a missing file) without parsing
// stderr.
func exitCodeForKind(kind patcherror.Kind) int {
	switch kind {
	case patcherror.KindCorruptPatch:
		return 2
	case patcherror.KindExtentParse:
		return 3
	case patcherror.KindExtentBounds:
		return 4
	case patcherror.KindOutOfMemory:
		return 5
	case patcherror.KindTooLarge:
		return 6
	case patcherror.KindIO:
		return 1
	default:
		return 1
	}
}
