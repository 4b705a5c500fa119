package store

import "strconv"

// UnknownComponentError is returned when no definition exists for a
// requested name.
type UnknownComponentError struct{ Name string }

func (e UnknownComponentError) Error() string {
	return "store: no definition for component " + strconv.Quote(e.Name)
}

// NoFactoryError is returned when a definition exists but carries no
// resolved factory, which means validation was skipped or the definition
// was rewritten into an unusable state.
type NoFactoryError struct{ Name string }

func (e NoFactoryError) Error() string {
	return "store: component " + strconv.Quote(e.Name) + " has no resolved factory"
}

// CreationCycleError is returned when realizing a component requires the
// component itself, directly or through its dependencies.
type CreationCycleError struct{ Name string }

func (e CreationCycleError) Error() string {
	return "store: creation cycle detected at component " + strconv.Quote(e.Name)
}

// FactoryError wraps a failure from a component factory or from an
// interceptor hook during creation.
type FactoryError struct {
	Name string
	Err  error
}

func (e FactoryError) Error() string {
	return "store: creating component " + strconv.Quote(e.Name) + ": " + e.Err.Error()
}

func (e FactoryError) Unwrap() error { return e.Err }
