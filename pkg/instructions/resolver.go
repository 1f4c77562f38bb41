package instructions

import (
	"net/url"
	"strings"
	"sync"
)

// documentSeparator joins the documents of one resolution into a single
// context block.
const documentSeparator = "\n\n---\n\n"

// Options configures a Resolver.
type Options struct {
	// MultiTenant enables domain matching: every top-level store directory
	// is an instruction set bound to domains by its configuration file.
	// Single-tenant resolvers walk the store root directly and ignore the
	// URL's hostname.
	MultiTenant bool

	// Logger receives diagnostics for absorbed failures. May be nil.
	Logger Logger
}

// Resolver resolves URLs to instruction context. Each instance owns its
// caches, so tests and authoring tools can run isolated resolvers against
// the same store.
type Resolver struct {
	store       Store
	multiTenant bool
	logger      Logger

	mu            sync.Mutex
	cache         map[string]resolution
	configs       map[string]*SetConfig
	setOrder      []string
	configsLoaded bool
}

// resolution is a memoized outcome, including the negative one: a URL with
// no applicable instructions is cached as absent.
type resolution struct {
	text  string
	found bool
}

// NewResolver creates a resolver over store.
func NewResolver(store Store, opts Options) *Resolver {
	return &Resolver{
		store:       store,
		multiTenant: opts.MultiTenant,
		logger:      opts.Logger,
		cache:       make(map[string]resolution),
		configs:     make(map[string]*SetConfig),
	}
}

// Resolve returns the instruction context applying to rawURL, or false
// when there is none. It never fails: malformed URLs, unreadable documents
// and invalid configurations all degrade to an absent result. Results are
// memoized by the exact URL string until ClearCache.
func (r *Resolver) Resolve(rawURL string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[rawURL]; ok {
		return cached.text, cached.found
	}
	text, found := r.resolve(rawURL)
	r.cache[rawURL] = resolution{text: text, found: found}
	return text, found
}

// ClearCache drops all memoized resolutions and parsed set configurations,
// so the next Resolve re-reads the store. Used to hot-reload instruction
// edits during authoring.
func (r *Resolver) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = make(map[string]resolution)
	r.configs = make(map[string]*SetConfig)
	r.setOrder = nil
	r.configsLoaded = false
}

func (r *Resolver) resolve(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	valid := err == nil && parsed.IsAbs() && parsed.Hostname() != ""

	basePath := ""
	var urlPath string
	if r.multiTenant {
		if !valid {
			return "", false
		}
		set, cfg, ok := r.findSet(parsed.Hostname())
		if !ok {
			return "", false
		}
		if cfg.pathExcluded(parsed.Path) {
			return "", false
		}
		basePath = set
		urlPath = parsed.Path
	} else {
		if valid {
			urlPath = parsed.Path
		} else {
			// Best effort: treat the raw string as a literal path.
			urlPath = rawURL
			if !strings.HasPrefix(urlPath, "/") {
				urlPath = "/" + urlPath
			}
		}
	}

	docs := r.walk(basePath, splitPath(urlPath))
	if len(docs) == 0 {
		return "", false
	}
	return strings.Join(docs, documentSeparator), true
}

// loadConfigs discovers instruction sets once per cache generation.
// Directories without a usable configuration are skipped; that is a normal
// outcome for multi-tenant stores under active authoring.
func (r *Resolver) loadConfigs() {
	if r.configsLoaded {
		return
	}
	r.configsLoaded = true

	for _, name := range r.store.TopLevelDirs() {
		cfg, err := loadSetConfig(r.store, name)
		if err != nil {
			if r.logger != nil {
				r.logger.Warnf("instruction set %q excluded: %v", name, err)
			}
			continue
		}
		if cfg == nil {
			continue
		}
		r.configs[name] = cfg
		r.setOrder = append(r.setOrder, name)
	}
}

// splitPath normalizes a URL path into its non-empty segments, stripping
// one trailing slash first so "/seo/" and "/seo" resolve identically.
func splitPath(urlPath string) []string {
	if urlPath != "/" {
		urlPath = strings.TrimSuffix(urlPath, "/")
	}
	var segments []string
	for _, segment := range strings.Split(urlPath, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
