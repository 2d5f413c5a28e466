// Package extent implements the extent-addressing layer used by pkg/bsdiff
// in place of ordinary file I/O: a text grammar for describing an ordered
// sequence of byte ranges within an underlying file (possibly including
// sparse ranges that logically read as zeros and discard on write), and a
// seekable, readable, writable logical view over that sequence.
package extent

// Extent is a single (offset, length) pair describing a contiguous span
// within an underlying file. A non-negative Offset denotes the byte range
// [Offset, Offset+Length) in that file. A negative Offset (canonically -1)
// denotes a sparse extent: reads over it yield zero bytes and writes to it
// are silently discarded, with no underlying I/O performed.
type Extent struct {
	// Offset is the starting byte offset within the underlying file, or a
	// negative value if this extent is sparse.
	Offset int64
	// Length is the number of bytes spanned by this extent. It is always
	// strictly positive.
	Length int64
}

// Sparse reports whether the extent is a sparse (zero-filled) extent.
func (e Extent) Sparse() bool {
	return e.Offset < 0
}

// TotalLength returns the sum of the lengths of the extents in the
// sequence, i.e. the logical length of the byte space they define.
func TotalLength(extents []Extent) int64 {
	var total int64
	for _, e := range extents {
		total += e.Length
	}
	return total
}
