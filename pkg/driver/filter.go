package driver

import (
	"tscheck/pkg/config"
	"tscheck/pkg/errors"
)

// Filter drops the type diagnostics of r whose message matches s. Syntax
// errors are never suppressed.
func Filter(r Result, s *config.Suppressor) Result {
	if s.Len() == 0 || len(r.TypeErrors) == 0 {
		return r
	}
	kept := make([]*errors.TypeError, 0, len(r.TypeErrors))
	msgs := make([]string, 0, len(r.TypeErrors))
	for _, e := range r.TypeErrors {
		if s.Matches(e.Msg) {
			debugPrintf("// [Driver] suppressed: %s\n", e.Msg)
			continue
		}
		kept = append(kept, e)
		msgs = append(msgs, e.Msg)
	}
	r.TypeErrors = kept
	r.Messages = msgs
	return r
}
