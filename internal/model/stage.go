package model

// StageStatus records the outcome of one pipeline stage, so that the
// context assembler's "omit empty section" rule is driven by an explicit
// state instead of implicit error suppression.
type StageStatus int

const (
	StageSkipped StageStatus = iota // stage not attempted (e.g. no ticker resolved)
	StageEmpty                      // attempted, produced nothing
	StagePresent                    // produced data
)

func (s StageStatus) String() string {
	switch s {
	case StagePresent:
		return "present"
	case StageEmpty:
		return "empty"
	default:
		return "skipped"
	}
}
