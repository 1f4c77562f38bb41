package instructions

import "fmt"

// FormatForPrompt wraps resolved instruction text and its originating URL
// in the envelope the orchestrator prepends to its task instructions.
// Pure string assembly; no I/O.
func FormatForPrompt(text, url string) string {
	return fmt.Sprintf(`## Page Instructions

The following instructions apply to the current page (%s):

%s

Apply these instructions when deciding your next actions on this page.`, url, text)
}
