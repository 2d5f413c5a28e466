//go:build !windows

package filesystem

import (
	"golang.org/x/sys/unix"
)

// File is the random-access file implementation used on POSIX systems. We
// avoid using os.File because its construction and operation can be
// expensive, its internals are complex, and it doesn't add any benefit for
// regular on-disk files (since polling and asynchronous I/O aren't needed
// here).
type File int

// Read implements io.Reader.Read.
func (f File) Read(buffer []byte) (int, error) {
	return readRetryingOnEINTR(int(f), buffer)
}

// Write implements io.Writer.Write.
func (f File) Write(buffer []byte) (int, error) {
	return writeRetryingOnEINTR(int(f), buffer)
}

// Seek implements io.Seeker.Seek.
func (f File) Seek(offset int64, whence int) (int64, error) {
	return seekConsideringEINTR(int(f), offset, whence)
}

// Close implements io.Closer.Close.
func (f File) Close() error {
	return closeConsideringEINTR(int(f))
}

// Size implements RandomAccessFile.Size by stat-ing the file descriptor.
func (f File) Size() (int64, error) {
	var metadata unix.Stat_t
	if err := fstatRetryingOnEINTR(int(f), &metadata); err != nil {
		return 0, err
	}
	return metadata.Size, nil
}
