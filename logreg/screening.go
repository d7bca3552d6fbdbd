package logreg

import "fmt"

// Policy selects the safe-screening strategy applied by the kernel.
type Policy int

const (
	// NoScreening runs plain coordinate descent over all features.
	NoScreening Policy = iota

	// SequentialSafe applies the gap-safe elimination test once per
	// penalty, at the first gap evaluation, using the warm-started
	// iterate carried over from the previous penalty.
	SequentialSafe

	// SequentialAndDynamicSafe additionally re-applies the elimination
	// test at every gap evaluation during the solve, shrinking the
	// active set as the iterate improves.
	SequentialAndDynamicSafe
)

func (p Policy) String() string {
	switch p {
	case NoScreening:
		return "none"
	case SequentialSafe:
		return "sequential"
	case SequentialAndDynamicSafe:
		return "sequential+dynamic"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}
