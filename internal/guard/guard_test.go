package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillforge/quill/internal/api"
	"github.com/quillforge/quill/internal/session"
)

func TestDecide(t *testing.T) {
	user := &api.User{ID: "u-1", Email: "ama@example.com"}
	profile := func(status api.AuthorStatus) *api.AuthorProfile {
		return &api.AuthorProfile{ID: "a-1", UserID: "u-1", Status: status}
	}

	tests := []struct {
		name string
		snap session.Snapshot
		want Decision
	}{
		{
			name: "validating with no identity",
			snap: session.Snapshot{Validating: true},
			want: Loading,
		},
		{
			name: "validating wins over a present identity",
			snap: session.Snapshot{Validating: true, Identity: user},
			want: Loading,
		},
		{
			name: "validating wins over an approved profile",
			snap: session.Snapshot{Validating: true, Identity: user, AuthorProfile: profile(api.AuthorStatusApproved)},
			want: Loading,
		},
		{
			name: "no identity",
			snap: session.Snapshot{},
			want: RedirectLogin,
		},
		{
			name: "profile without identity still redirects to login",
			snap: session.Snapshot{AuthorProfile: profile(api.AuthorStatusApproved)},
			want: RedirectLogin,
		},
		{
			name: "identity without profile",
			snap: session.Snapshot{Identity: user},
			want: RedirectApply,
		},
		{
			name: "pending application",
			snap: session.Snapshot{Identity: user, AuthorProfile: profile(api.AuthorStatusPending)},
			want: RedirectPending,
		},
		{
			name: "rejected application",
			snap: session.Snapshot{Identity: user, AuthorProfile: profile(api.AuthorStatusRejected)},
			want: RedirectPending,
		},
		{
			name: "approved author",
			snap: session.Snapshot{Identity: user, AuthorProfile: profile(api.AuthorStatusApproved)},
			want: RenderContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.snap))
		})
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "redirect-login", RedirectLogin.String())
	assert.Equal(t, "redirect-apply", RedirectApply.String())
	assert.Equal(t, "redirect-pending", RedirectPending.String())
	assert.Equal(t, "render-content", RenderContent.String())
	assert.Equal(t, "unknown", Decision(99).String())
}
