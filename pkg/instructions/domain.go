package instructions

import "strings"

// MatchDomain reports whether hostname matches a single domain pattern.
// A pattern of the form "*.suffix" matches any hostname ending in
// ".suffix" and also the bare "suffix" itself, so "*.acme.com" covers
// both "app.acme.com" and "acme.com". Any other pattern must equal the
// hostname exactly.
func MatchDomain(hostname, pattern string) bool {
	if hostname == pattern {
		return true
	}
	suffix, ok := strings.CutPrefix(pattern, "*.")
	if !ok {
		return false
	}
	return hostname == suffix || strings.HasSuffix(hostname, "."+suffix)
}

// findSet returns the first instruction set whose domain patterns match
// hostname, in set enumeration order. When several sets declare
// overlapping patterns the earliest enumerated one wins.
func (r *Resolver) findSet(hostname string) (string, *SetConfig, bool) {
	r.loadConfigs()
	for _, name := range r.setOrder {
		cfg := r.configs[name]
		for _, pattern := range cfg.Domains {
			if MatchDomain(hostname, pattern) {
				return name, cfg, true
			}
		}
	}
	return "", nil, false
}
