// Package guard decides what an author-only surface should show for a
// given session state. The decision is a pure function of the snapshot,
// so any surface (a command, the dashboard) re-evaluates it whenever the
// session changes.
package guard

import (
	"github.com/quillforge/quill/internal/api"
	"github.com/quillforge/quill/internal/session"
)

// Decision is what a protected surface should do
type Decision int

const (
	// Loading means validation is still in flight; show a wait state
	// and decide nothing else yet
	Loading Decision = iota

	// RedirectLogin means no validated identity is present
	RedirectLogin

	// RedirectApply means the account is valid but has never applied
	// to be an author
	RedirectApply

	// RedirectPending means an application exists but has not been
	// approved; rejected applications land here too, the pending
	// surface explains the rejection
	RedirectPending

	// RenderContent means the author is approved and the protected
	// surface may render
	RenderContent
)

// String returns a short name for logs and test output
func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectApply:
		return "redirect-apply"
	case RedirectPending:
		return "redirect-pending"
	case RenderContent:
		return "render-content"
	default:
		return "unknown"
	}
}

// Decide maps a session snapshot to the single decision for a protected
// surface. Checks are ordered: an in-flight validation wins over
// everything, identity over profile, profile status last.
func Decide(snap session.Snapshot) Decision {
	if snap.Validating {
		return Loading
	}
	if snap.Identity == nil {
		return RedirectLogin
	}
	if snap.AuthorProfile == nil {
		return RedirectApply
	}
	if snap.AuthorProfile.Status != api.AuthorStatusApproved {
		return RedirectPending
	}
	return RenderContent
}
