package bootstrap

import "strconv"

const (
	opMutateRegistry   = "mutate registry"
	opConfigureFactory = "configure factory"
)

// DefinitionError indicates that a name discovered through a capability
// query could not be realized as that capability: either creation failed
// or the produced instance has the wrong type. It aborts the bootstrap;
// continuing from a partially discovered extension set is never safe.
type DefinitionError struct {
	Name string
	Want string
	Err  error
}

func (e *DefinitionError) Error() string {
	return "bootstrap: component " + strconv.Quote(e.Name) + " is not usable as " + e.Want + ": " + e.Err.Error()
}

func (e *DefinitionError) Unwrap() error { return e.Err }

// MutationError wraps a failure raised by an extension hook. No rollback
// of already-applied registry mutations is attempted.
type MutationError struct {
	Name string
	Op   string
	Err  error
}

func (e *MutationError) Error() string {
	return "bootstrap: " + e.Op + " hook of " + strconv.Quote(e.Name) + " failed: " + e.Err.Error()
}

func (e *MutationError) Unwrap() error { return e.Err }
