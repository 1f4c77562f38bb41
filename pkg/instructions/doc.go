// Package instructions resolves navigated URLs to instruction context.
//
// Authors maintain a directory tree of Markdown documents (the instruction
// store) describing how to operate specific sites and pages. After every
// navigation the orchestrator asks the resolver for the context that applies
// to the new URL; the resolver walks the store along the URL's path segments
// and concatenates every applicable document.
//
// # Store layout
//
// Single-tenant stores root the tree directly:
//
//	instructions/_base.md            instructions for the whole site
//	instructions/seo/_base.md        instructions for everything under /seo
//	instructions/seo/_dynamic/       matches data-bearing segments (ids, hashes)
//	instructions/seo/reports.md      instructions for the /seo/reports page
//
// Multi-tenant stores add one level: each top-level directory is an
// instruction set bound to one or more domains by a _config.json (or
// _config.yaml) file, and the same layout nests beneath it:
//
//	instructions/acme/_config.json   {"domains": ["*.acme.com"]}
//	instructions/acme/_base.md
//	instructions/acme/billing/_base.md
//
// # Matching
//
// The walker descends segment by segment, collecting each level's _base.md.
// Segments that look like identifiers (numeric ids, UUIDs, hex hashes,
// object ids) descend into a folder named "_dynamic" or "*" so one subtree
// covers infinitely many concrete resources. A leaf page may also be covered
// by an exact file match: /projects/overview picks up projects/overview.md
// whether or not any folder matched.
//
// # Caching
//
// A Resolver memoizes resolutions per raw URL and parses set configurations
// once. Both caches live until ClearCache, which authors use to hot-reload
// store edits. Resolution never fails: malformed URLs, unreadable files and
// invalid configurations all degrade to "no context".
package instructions
