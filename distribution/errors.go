package distribution

import "fmt"

// ParametersError reports that a Config describes an invalid
// distribution (e.g. a TruncNormal whose min is not below its max), by
// analogy with the original's DistributionParametersError.
type ParametersError struct {
	Msg string
}

func (e *ParametersError) Error() string { return e.Msg }

func paramError(format string, args ...any) error {
	return &ParametersError{Msg: fmt.Sprintf(format, args...)}
}
