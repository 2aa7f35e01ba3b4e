package urltransfer

import (
	"fmt"
	"strings"
	"sync"
)

var (
	backendsMu sync.RWMutex
	backends   = map[string]BackendFactory{}
)

// RegisterBackend associates a scheme (e.g. "http") with the factory used
// to build its Backend. Scheme backend packages call this from an init
// function so that New can select them by URL scheme alone.
func RegisterBackend(scheme string, f BackendFactory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[strings.ToLower(scheme)] = f
}

func lookupBackend(scheme string) (BackendFactory, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	f, ok := backends[strings.ToLower(scheme)]
	if !ok {
		return nil, fmt.Errorf("urltransfer: no backend registered for scheme %q", scheme)
	}
	return f, nil
}
