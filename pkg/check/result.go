package check

// Status represents the outcome of a single check.
type Status string

const (
	StatusPass       Status = "PASS"
	StatusFail       Status = "FAIL"
	StatusToEvaluate Status = "TO_EVALUATE" // needs a human to judge the evidence
	StatusUndefined  Status = "UNDEFINED"   // never evaluated
)

// Check is one unit of evidence. It is a value: once built it does not change.
type Check struct {
	Status   Status
	Command  string // what was examined, e.g. "i2cdetect -l"
	Expected string // what a healthy system should show
	Result   string // evidence lines joined by "\n", may be empty
}

// New builds a Check.
func New(status Status, command, expected, result string) Check {
	return Check{Status: status, Command: command, Expected: expected, Result: result}
}

func Pass(command, expected, result string) Check {
	return New(StatusPass, command, expected, result)
}

func Fail(command, expected, result string) Check {
	return New(StatusFail, command, expected, result)
}

func ToEvaluate(command, expected, result string) Check {
	return New(StatusToEvaluate, command, expected, result)
}

func Undefined(command, expected, result string) Check {
	return New(StatusUndefined, command, expected, result)
}

// PassIf returns a PASS check when ok, FAIL otherwise.
func PassIf(ok bool, command, expected, result string) Check {
	if ok {
		return Pass(command, expected, result)
	}
	return Fail(command, expected, result)
}

// Result is the outcome of one checker: a title plus its checks in insertion order.
type Result struct {
	Title  string // e.g. "I2C Detection"
	checks []Check
}

// NewResult creates a Result with the given title and initial checks.
func NewResult(title string, checks ...Check) *Result {
	r := &Result{Title: title}
	r.Add(checks...)
	return r
}

// Add appends checks. Checks are never removed or reordered.
func (r *Result) Add(checks ...Check) *Result {
	r.checks = append(r.checks, checks...)
	return r
}

// Checks returns a copy of the checks in insertion order.
func (r *Result) Checks() []Check {
	out := make([]Check, len(r.checks))
	copy(out, r.checks)
	return out
}

func (r *Result) Len() int {
	return len(r.checks)
}

// Count returns the number of checks with the given status.
func (r *Result) Count(s Status) int {
	n := 0
	for _, c := range r.checks {
		if c.Status == s {
			n++
		}
	}
	return n
}

// Passed returns true if at least one check passed.
func (r *Result) Passed() bool {
	return r.Count(StatusPass) > 0
}
