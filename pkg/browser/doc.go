// Package browser is the orchestration glue between webpilot and
// Playwright. It owns the browser process lifecycle and exposes the page
// actions an orchestrator drives (navigate, click, fill, extract,
// screenshot).
//
// After every action that can change the current URL, the manager consults
// the instruction resolver so the orchestrator receives page-specific
// operating context alongside the action result. The resolver is a plain
// collaborator here; this package only decides when to call it, including
// honoring the WEBPILOT_PAGE_CONTEXT kill switch.
package browser
