package filesystem

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// Open opens path for random access with the given Mode, returning a File
// that implements RandomAccessFile. As on POSIX, the file must already
// exist and is never created or truncated (see the POSIX implementation's
// doc comment for the rationale).
func Open(path string, mode Mode) (File, error) {
	var access uint32
	switch mode {
	case ModeRead:
		access = windows.GENERIC_READ
	case ModeWrite:
		access = windows.GENERIC_WRITE
	case ModeReadWrite:
		access = windows.GENERIC_READ | windows.GENERIC_WRITE
	default:
		return 0, errors.Errorf("unknown file mode: %v", mode)
	}

	path16, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, errors.Wrap(err, "unable to convert path to UTF-16")
	}

	handle, err := windows.CreateFile(
		path16,
		access,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return 0, err
	}

	return File(handle), nil
}
