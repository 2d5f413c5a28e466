package extent

import (
	"io"

	"github.com/pkg/errors"

	"github.com/mutagen-io/extentpatch/pkg/filesystem"
	"github.com/mutagen-io/extentpatch/pkg/patcherror"
)

// Mode specifies which operations a View permits against its underlying
// file. It mirrors filesystem.Mode but is tracked independently, since a
// View's access mode governs what the view itself will allow, separate from
// however the caller happened to open the backing file.
type Mode uint8

const (
	// ModeRead permits only Read.
	ModeRead Mode = iota
	// ModeWrite permits only Write.
	ModeWrite
	// ModeReadWrite permits both Read and Write.
	ModeReadWrite
)

// View presents an ordered extent sequence over an underlying random-access
// file as a single logical byte-addressable stream. It implements
// filesystem.RandomAccessFile.
type View struct {
	file    filesystem.RandomAccessFile
	mode    Mode
	extents []Extent
	// prefix[i] is the logical offset at which extents[i] begins; it has
	// length len(extents)+1, with prefix[len(extents)] equal to length.
	prefix []int64
	length int64

	logicalPos int64
	extentIx   int
	intraPos   int64
	// physicalPos tracks the underlying file's cursor, lazily, so that a
	// run of same-extent transfers issues at most one Seek. -1 means
	// unknown (forcing a Seek before the next non-sparse I/O).
	physicalPos int64
}

// Open constructs a View over file using the given extent sequence and
// access mode. The extent sequence must be non-empty; this is enforced by
// Parse as well, but Open is also usable directly by callers that construct
// a []Extent programmatically.
func Open(file filesystem.RandomAccessFile, mode Mode, extents []Extent) (*View, error) {
	if len(extents) == 0 {
		return nil, patcherror.New(patcherror.KindExtentParse, "open extent view: empty extent sequence")
	}

	prefix := make([]int64, len(extents)+1)
	var total int64
	for i, e := range extents {
		if e.Length <= 0 {
			return nil, patcherror.Wrap(
				errors.Errorf("extent %d has non-positive length %d", i, e.Length),
				patcherror.KindExtentParse, "open extent view",
			)
		}
		prefix[i] = total
		total += e.Length
	}
	prefix[len(extents)] = total

	return &View{
		file:        file,
		mode:        mode,
		extents:     extents,
		prefix:      prefix,
		length:      total,
		physicalPos: -1,
	}, nil
}

// Length returns the logical length of the view, i.e. the sum of the
// lengths of its extents.
func (v *View) Length() int64 {
	return v.length
}

// Size implements filesystem.RandomAccessFile.Size.
func (v *View) Size() (int64, error) {
	return v.length, nil
}

// Close releases the underlying file handle and drops the extent slice.
func (v *View) Close() error {
	err := v.file.Close()
	v.extents = nil
	v.prefix = nil
	return err
}

// Seek implements io.Seeker.Seek with SET/CUR/END whence values. The target
// must land in [0, Length()]; seeking exactly to Length() is valid and
// represents end-of-view.
func (v *View) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = v.logicalPos + offset
	case io.SeekEnd:
		target = v.length + offset
	default:
		return 0, errors.Errorf("invalid whence value: %d", whence)
	}

	if target < 0 || target > v.length {
		return 0, patcherror.Wrap(
			errors.Errorf("seek target %d out of range [0, %d]", target, v.length),
			patcherror.KindExtentBounds, "seek",
		)
	}

	if target != v.logicalPos {
		v.extentIx = v.locate(target)
		if v.extentIx < len(v.extents) {
			v.intraPos = target - v.prefix[v.extentIx]
		} else {
			v.intraPos = 0
		}
		v.logicalPos = target
	}

	return target, nil
}

// locate finds the extent index k such that prefix[k] <= p < prefix[k+1]
// (or len(extents) if p == length), using an exponential search outward
// from the view's current extent index followed by a binary search within
// the discovered bracket. Since prefix is strictly increasing, this
// correctly narrows to the enclosing extent in O(log D) comparisons, where
// D is the number of extents between the current position and p — which
// favors both sequential scans and the small local seeks typical of patch
// application.
func (v *View) locate(p int64) int {
	n := len(v.extents)
	if p >= v.length {
		return n
	}

	cur := v.extentIx
	if cur >= n {
		cur = n - 1
	}

	var lo, hi int
	if p < v.prefix[cur] {
		// Target precedes the current extent: expand the bracket leftward.
		lo, hi = cur, cur
		step := 1
		for lo > 0 && v.prefix[lo] > p {
			hi = lo
			lo -= step
			if lo < 0 {
				lo = 0
			}
			step *= 2
		}
	} else if p >= v.prefix[cur]+v.extents[cur].Length {
		// Target follows the current extent: expand the bracket rightward.
		lo, hi = cur, cur
		step := 1
		for hi < n-1 && v.prefix[hi+1] <= p {
			lo = hi
			hi += step
			if hi > n-1 {
				hi = n - 1
			}
			step *= 2
		}
	} else {
		// Target is already within the current extent.
		return cur
	}

	for lo < hi {
		mid := (lo + hi + 1) / 2
		if v.prefix[mid] <= p {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Read implements io.Reader.Read.
func (v *View) Read(buf []byte) (int, error) {
	if v.mode == ModeWrite {
		return 0, patcherror.New(patcherror.KindExtentBounds, "read: view is not readable")
	}
	if len(buf) == 0 {
		return 0, nil
	}
	if v.logicalPos >= v.length {
		return 0, io.EOF
	}
	return v.transfer(buf, false)
}

// Write implements io.Writer.Write. Writes wholly within a sparse extent
// consume bytes without performing any underlying I/O; writing past the
// logical end of the view is an error.
func (v *View) Write(buf []byte) (int, error) {
	if v.mode == ModeRead {
		return 0, patcherror.New(patcherror.KindExtentBounds, "write: view is not writable")
	}
	if len(buf) == 0 {
		return 0, nil
	}
	if v.logicalPos >= v.length {
		return 0, patcherror.Wrap(
			errors.New("write past end of extent view"),
			patcherror.KindExtentBounds, "write",
		)
	}
	return v.transfer(buf, true)
}

// transfer drives the shared read/write engine loop: it walks extents
// starting at the view's current position, performing one underlying I/O
// (or, for sparse extents, a pure memory operation) per extent crossed,
// until buf is exhausted or the logical end of the view is reached. A
// single call is permitted to satisfy a request spanning multiple extent
// boundaries.
func (v *View) transfer(buf []byte, write bool) (int, error) {
	var total int
	for total < len(buf) && v.extentIx < len(v.extents) {
		e := v.extents[v.extentIx]
		remaining := e.Length - v.intraPos
		if remaining <= 0 {
			v.extentIx++
			v.intraPos = 0
			continue
		}

		chunk := int64(len(buf) - total)
		if chunk > remaining {
			chunk = remaining
		}

		var n int
		var err error
		if e.Sparse() {
			if write {
				n = int(chunk)
			} else {
				span := buf[total : total+int(chunk)]
				for i := range span {
					span[i] = 0
				}
				n = int(chunk)
			}
		} else {
			target := e.Offset + v.intraPos
			if v.physicalPos != target {
				if _, serr := v.file.Seek(target, io.SeekStart); serr != nil {
					v.physicalPos = -1
					if total > 0 {
						return total, nil
					}
					return total, patcherror.Wrap(serr, patcherror.KindIO, "seek underlying file")
				}
				v.physicalPos = target
			}
			span := buf[total : total+int(chunk)]
			if write {
				n, err = v.file.Write(span)
			} else {
				n, err = v.file.Read(span)
			}
		}

		if n > 0 {
			total += n
			v.logicalPos += int64(n)
			v.intraPos += int64(n)
			if !e.Sparse() {
				v.physicalPos += int64(n)
			}
			if v.intraPos == e.Length {
				v.extentIx++
				v.intraPos = 0
			}
		}

		if err != nil {
			if err == io.EOF && total > 0 {
				break
			}
			if total > 0 {
				v.physicalPos = -1
				return total, nil
			}
			return total, patcherror.Wrap(err, patcherror.KindIO, "transfer underlying file")
		}

		if n < int(chunk) {
			// Short underlying transfer with no error: stop here and let
			// the caller decide whether to issue another call.
			break
		}
	}
	return total, nil
}
