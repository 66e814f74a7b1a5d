// internal/validation/result.go
package validation

// Result is the shared outcome type for every structural check in the
// service. Errors block the operation; warnings are advisory and are passed
// through for logging or display only.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (r *Result) addError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Valid = false
}

func (r *Result) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func newResult() Result {
	return Result{Valid: true, Errors: []string{}, Warnings: []string{}}
}
