package instructions

import "regexp"

// Shapes that mark a path segment as data-bearing rather than a stable
// route name. The hex-run rule overlaps the UUID and object-id rules;
// classification only needs a boolean, so the overlap is harmless.
var (
	decimalSegment  = regexp.MustCompile(`^[0-9]+$`)
	uuidSegment     = regexp.MustCompile(`^[0-9a-fA-F-]{36}$`)
	hexRunSegment   = regexp.MustCompile(`^[0-9a-fA-F]{8,}$`)
	objectIDSegment = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
)

// IsDynamicSegment reports whether a URL path segment is a data identifier
// (numeric id, UUID, hash, or database object id) rather than a stable
// route name. Dynamic segments descend into "_dynamic" or "*" folders
// instead of a folder with their own name.
func IsDynamicSegment(segment string) bool {
	return decimalSegment.MatchString(segment) ||
		uuidSegment.MatchString(segment) ||
		hexRunSegment.MatchString(segment) ||
		objectIDSegment.MatchString(segment)
}
