package extent

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mutagen-io/extentpatch/pkg/patcherror"
)

// Parse parses a non-empty extent specification string of the form
// "offset:length[,offset:length...]" (offset = "-"? digit+, length =
// digit+, no whitespace permitted) into a validated, ordered extent
// sequence, along with the sequence's total logical length. The empty
// string is rejected: callers are expected to supply a spec only when
// extents are actually in use.
//
// Parse does not coalesce, reorder, or deduplicate extents; it returns
// exactly the sequence named by spec, in the order named.
func Parse(spec string) ([]Extent, int64, error) {
	if spec == "" {
		return nil, 0, badGrammar("empty extent specification")
	}

	pairs := strings.Split(spec, ",")
	extents := make([]Extent, 0, len(pairs))
	for _, pair := range pairs {
		extent, err := parsePair(pair)
		if err != nil {
			return nil, 0, err
		}
		extents = append(extents, extent)
	}

	return extents, TotalLength(extents), nil
}

// parsePair parses a single "offset:length" token.
func parsePair(pair string) (Extent, error) {
	colon := strings.IndexByte(pair, ':')
	if colon < 0 {
		return Extent{}, badGrammar("extent %q missing ':' separator", pair)
	}

	offsetStr := pair[:colon]
	lengthStr := pair[colon+1:]

	// A second colon in the token (e.g. "0:1:2") is a grammar error, not
	// silently accepted by taking the first split.
	if strings.IndexByte(lengthStr, ':') >= 0 {
		return Extent{}, badGrammar("extent %q has too many ':' separators", pair)
	}

	if !validOffsetLiteral(offsetStr) {
		return Extent{}, badGrammar("extent %q has malformed offset %q", pair, offsetStr)
	}
	if !validLengthLiteral(lengthStr) {
		return Extent{}, badGrammar("extent %q has malformed length %q", pair, lengthStr)
	}

	offset, err := strconv.ParseInt(offsetStr, 10, 64)
	if err != nil {
		return Extent{}, overflow("extent %q offset %q does not fit a signed 64-bit integer", pair, offsetStr)
	}

	length, err := strconv.ParseInt(lengthStr, 10, 64)
	if err != nil {
		return Extent{}, overflow("extent %q length %q does not fit a signed 64-bit integer", pair, lengthStr)
	}
	if length <= 0 {
		return Extent{}, zeroLength("extent %q has non-positive length %d", pair, length)
	}

	// Normalize any negative offset to the canonical sparse sentinel so that
	// downstream code can test Offset < 0 uniformly without caring which
	// negative value a caller happened to write.
	if offset < 0 {
		offset = -1
	}

	return Extent{Offset: offset, Length: length}, nil
}

// validOffsetLiteral reports whether s matches "-"? digit+ with no
// whitespace (leading zeros are accepted). strconv.ParseInt is
// deliberately not relied on for this check alone, since it also accepts a
// leading "+" that the grammar does not permit.
func validOffsetLiteral(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	return validLengthLiteral(s)
}

// validLengthLiteral reports whether s matches digit+ with no sign and no
// whitespace.
func validLengthLiteral(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func badGrammar(format string, args ...interface{}) *patcherror.Error {
	return patcherror.Wrap(fmt.Errorf(format, args...), patcherror.KindExtentParse, "bad grammar")
}

func overflow(format string, args ...interface{}) *patcherror.Error {
	return patcherror.Wrap(fmt.Errorf(format, args...), patcherror.KindExtentParse, "numeric overflow")
}

func zeroLength(format string, args ...interface{}) *patcherror.Error {
	return patcherror.Wrap(fmt.Errorf(format, args...), patcherror.KindExtentParse, "non-positive length")
}
