package checker

import "fmt"

// Kind classifies structural violations.
type Kind int

// Violation kinds, in the order checks run within one directory.
const (
	// KindMissingDirectory indicates a path a rule expects to be a
	// directory does not exist or is not one.
	KindMissingDirectory Kind = iota
	// KindMissingRequiredDirectory indicates a mandatory subdirectory is absent.
	KindMissingRequiredDirectory
	// KindMissingRequiredFile indicates a mandatory file is absent.
	KindMissingRequiredFile
	// KindUnexpectedDirectory indicates a subdirectory no pattern permits.
	KindUnexpectedDirectory
	// KindUnexpectedFile indicates a file no pattern permits.
	KindUnexpectedFile
	// KindAmbiguousRule indicates more than one pattern binding matches the
	// same directory name.
	KindAmbiguousRule
)

// String returns the diagnostic label for the kind.
func (k Kind) String() string {
	switch k {
	case KindMissingDirectory:
		return "missing directory"
	case KindMissingRequiredDirectory:
		return "missing required directory"
	case KindMissingRequiredFile:
		return "missing required file"
	case KindUnexpectedDirectory:
		return "unexpected directory"
	case KindUnexpectedFile:
		return "unexpected file"
	case KindAmbiguousRule:
		return "ambiguous directory rule"
	default:
		return "unknown"
	}
}

// Violation is the first structural failure found in a run. Path is
// slash-separated and relative to the traversal root ("." is the root
// itself); Rule names the rule that was being applied.
type Violation struct {
	Kind Kind
	Path string
	Rule string
}

// Error renders the single-line diagnostic for the violation.
func (v *Violation) Error() string {
	if v.Kind == KindAmbiguousRule {
		return fmt.Sprintf("%s for: %s", v.Kind, v.Path)
	}
	return fmt.Sprintf("%s: %s", v.Kind, v.Path)
}
