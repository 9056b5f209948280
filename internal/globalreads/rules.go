package globalreads

import "fmt"

// Rule is a globalreads rule code (MDL-series).
type Rule int

const (
	ruleInvalid Rule = iota

	MDL001UntrackedGlobalRead
	MDL002GlobalWrite
	MDL003TrackNonFunc
)

// String returns the canonical code and short name of the rule.
// Example: "MDL001: UntrackedGlobalRead"
func (r Rule) String() string {
	switch r {
	case MDL001UntrackedGlobalRead:
		return "MDL001: UntrackedGlobalRead"
	case MDL002GlobalWrite:
		return "MDL002: GlobalWrite"
	case MDL003TrackNonFunc:
		return "MDL003: TrackNonFunc"
	default:
		return fmt.Sprintf("rule-unknown(%d)", r)
	}
}

// Description returns the human-readable explanation of the rule.
func (r Rule) Description() string {
	switch r {
	case MDL001UntrackedGlobalRead:
		return "Tracked functions must read package variables through a namespace."
	case MDL002GlobalWrite:
		return "Tracked functions must not assign package variables."
	case MDL003TrackNonFunc:
		return "Only functions can be tracked."
	default:
		return fmt.Sprintf("unknown-rule(%d)", r)
	}
}

func UntrackedGlobalRead() Rule { return MDL001UntrackedGlobalRead }
func GlobalWrite() Rule         { return MDL002GlobalWrite }
func TrackNonFunc() Rule        { return MDL003TrackNonFunc }
