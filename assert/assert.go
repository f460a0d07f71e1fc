package assert

import "github.com/oomph-ac/roam/oerror"

// IsTrue panics with an *oerror.Error built from message and args if ok is false.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
