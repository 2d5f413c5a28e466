package filesystem

import (
	"io"
)

// RandomAccessFile is the union of io.Reader, io.Writer, io.Seeker, and
// io.Closer that both the plain-file old/new image and the extent view
// (pkg/extent) satisfy. The reconstruction engine in pkg/bsdiff depends only
// on this interface, never on whether the underlying image is extent-backed.
type RandomAccessFile interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
	// Size returns the total logical length of the file in bytes.
	Size() (int64, error)
}
