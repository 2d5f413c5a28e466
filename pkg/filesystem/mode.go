package filesystem

// Mode specifies the access mode with which a file should be opened.
type Mode uint8

const (
	// ModeRead opens the file read-only. The file must already exist; it is
	// never created.
	ModeRead Mode = iota
	// ModeWrite opens the file write-only, without truncation. The file
	// must already exist — extents (when in use) describe spans within it,
	// and truncating it would destroy data adjacent to those spans that the
	// caller is relying on being preserved. The file is never created.
	ModeWrite
	// ModeReadWrite opens the file for both reading and writing, with the
	// same no-create, no-truncate semantics as ModeRead and ModeWrite.
	ModeReadWrite
)

// String provides a human-readable name for a Mode.
func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeReadWrite:
		return "read-write"
	default:
		return "unknown"
	}
}
