package container

import "sync"

// Process-wide container and its initialization guard.
var (
	defaultContainer *Container
	defaultOnce      sync.Once
)

// Default returns the process-wide container, creating it on first call.
// Code that can take a *Container explicitly should; Default exists for the
// places that cannot.
func Default() *Container {
	defaultOnce.Do(func() {
		defaultContainer = New()
	})
	return defaultContainer
}

// Initialize bulk-loads a bindings document into the default container.
func Initialize(path string) error {
	return Default().LoadFile(path)
}

// Set registers a binding on the default container.
func Set(id string, concrete any) {
	Default().Set(id, concrete)
}

// Get resolves id on the default container.
func Get(id string, overrides ...any) (any, error) {
	return Default().Get(id, overrides...)
}

// ResetDefault drops the process-wide container so the next Default call
// builds a fresh one. Not safe for concurrent use; meant for tests.
func ResetDefault() {
	defaultOnce = sync.Once{}
	defaultContainer = nil
}
