package step

// Policy declares how the runner reacts when a step fails.
// Every step carries its policy explicitly at registration time rather
// than relying on which code path happens to guard it.
type Policy string

const (
	// PolicyFailFast aborts the remaining run when the step fails and
	// the process exits non-zero.
	PolicyFailFast Policy = "fail-fast"
	// PolicyBestEffort logs the failure and continues with the next
	// step; a best-effort failure alone leaves the exit status at zero.
	PolicyBestEffort Policy = "best-effort"
)

// String returns the string representation of the policy.
func (p Policy) String() string {
	return string(p)
}

// Fatal returns true if a failure under this policy aborts the run.
func (p Policy) Fatal() bool {
	return p == PolicyFailFast
}
