package instructions

import "path"

const (
	// baseDocName holds the instructions applying to an entire directory
	// level.
	baseDocName = "_base.md"

	// indexDocName holds the instructions for a matched leaf folder
	// (single-tenant stores only).
	indexDocName = "index.md"
)

// dynamicFolders are the candidate folder names tried, in order, when a
// path segment is classified as dynamic.
var dynamicFolders = []string{"_dynamic", "*"}

// walk descends the instruction tree under basePath along the URL's path
// segments, collecting every applicable document in root-to-leaf order.
func (r *Resolver) walk(basePath string, segments []string) []string {
	var docs []string
	appendDoc := func(relPath string) {
		text, ok := r.store.ReadDocument(relPath)
		if !ok || text == "" {
			return
		}
		docs = append(docs, text)
	}

	// The root base document applies to every path under basePath.
	appendDoc(path.Join(basePath, baseDocName))

	current := basePath
	for i, segment := range segments {
		last := i == len(segments)-1

		candidates := []string{segment}
		if IsDynamicSegment(segment) {
			candidates = dynamicFolders
		}
		matched := ""
		for _, candidate := range candidates {
			if r.store.DirExists(path.Join(current, candidate)) {
				matched = candidate
				break
			}
		}

		if matched == "" {
			// Nothing to descend into; a leaf file may still cover the
			// final segment.
			if last {
				appendDoc(path.Join(current, segment+".md"))
			}
			break
		}

		current = path.Join(current, matched)
		appendDoc(path.Join(current, baseDocName))
		if last && !r.multiTenant {
			appendDoc(path.Join(current, indexDocName))
		}
	}

	// Exact sibling-file match: a page-specific file may coexist with a
	// folder of the same leaf name. Tried regardless of how the descent
	// ended, deduplicated by content.
	if len(segments) > 0 {
		parts := append([]string{basePath}, segments[:len(segments)-1]...)
		parts = append(parts, segments[len(segments)-1]+".md")
		if text, ok := r.store.ReadDocument(path.Join(parts...)); ok && text != "" {
			duplicate := false
			for _, doc := range docs {
				if doc == text {
					duplicate = true
					break
				}
			}
			if !duplicate {
				docs = append(docs, text)
			}
		}
	}

	return docs
}
