package logging

import "sync"

// Registry caches loggers by name (or name plus context) so repeated
// requests for the same logical logger share one instance. It is safe
// for concurrent use; the library itself is otherwise single-threaded.
type Registry struct {
	mu      sync.Mutex
	loggers map[string]*Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{loggers: make(map[string]*Logger)}
}

// Get returns the cached logger for name, constructing it from opts on
// first request. On a cache hit opts is ignored entirely: the first
// configuration wins for the lifetime of the registry. Callers that
// need a different configuration under the same name must Reset first.
func (r *Registry) Get(name string, opts Options) (*Logger, error) {
	return r.get(name, opts)
}

// GetContext behaves like Get with the cache key name + "_" + context,
// so the same name can carry differently scoped loggers (for example
// "bot" in "browser" and "scraping" contexts).
func (r *Registry) GetContext(name, context string, opts Options) (*Logger, error) {
	if context == "" {
		return r.get(name, opts)
	}
	return r.get(name+"_"+context, opts)
}

func (r *Registry) get(key string, opts Options) (*Logger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if logger, ok := r.loggers[key]; ok {
		return logger, nil
	}

	logger, err := New(key, opts)
	if err != nil {
		return nil, err
	}
	r.loggers[key] = logger
	return logger, nil
}

// Len returns the number of cached loggers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.loggers)
}

// Reset closes every cached logger's file sink and empties the cache.
// Subsequent Get calls construct fresh loggers.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, logger := range r.loggers {
		_ = logger.Close()
	}
	r.loggers = make(map[string]*Logger)
}

// defaultRegistry backs the package-level helpers for scripts that do
// not pass a registry around.
var defaultRegistry = NewRegistry()

// Get returns a cached logger from the package default registry.
func Get(name string, opts Options) (*Logger, error) {
	return defaultRegistry.Get(name, opts)
}

// GetContext returns a context-scoped logger from the package default
// registry.
func GetContext(name, context string, opts Options) (*Logger, error) {
	return defaultRegistry.GetContext(name, context, opts)
}

// Reset clears the package default registry.
func Reset() {
	defaultRegistry.Reset()
}
