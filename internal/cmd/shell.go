package cmd

import (
	"context"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillforge/quill/internal/api"
	"github.com/quillforge/quill/internal/config"
	"github.com/quillforge/quill/internal/credstore"
	"github.com/quillforge/quill/internal/errors"
	"github.com/quillforge/quill/internal/guard"
	"github.com/quillforge/quill/internal/log"
	"github.com/quillforge/quill/internal/session"
	"github.com/quillforge/quill/internal/ux"
)

// shell holds the dependencies a command needs: the configured API
// client (with the refreshing transport), the credential store and the
// session store, all wired together.
type shell struct {
	cfg    config.Config
	creds  credstore.Store
	client *api.Client
	store  *session.Store
	logger *log.Logger
}

// newShell builds the dependency graph for one command invocation. The
// transport's force-logout signal is wired to the session store, so a
// failed token refresh drops the in-memory session immediately.
func newShell() (*shell, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := log.DefaultLogger()
	creds := credstore.NewFileStore(config.Dir())

	s := &shell{
		cfg:    cfg,
		creds:  creds,
		logger: logger,
	}

	transport := api.NewAuthTransport(
		http.DefaultTransport,
		creds,
		cfg.APIURL+"/auth/refresh",
		func() {
			if s.store != nil {
				s.store.ForceUnauthenticated()
			}
		},
	)

	s.client = api.NewClient(cfg.APIURL,
		api.WithHTTPClient(&http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		}),
		api.WithLogger(logger),
	)

	s.store = session.New(s.client, creds, session.WithLogger(logger))

	return s, nil
}

// requireAuthenticated bootstraps the session and fails unless an
// identity is present
func (s *shell) requireAuthenticated(ctx context.Context) (session.Snapshot, error) {
	s.store.CheckAuth(ctx)
	snap := s.store.Snapshot()
	if !snap.Authenticated() {
		return snap, errors.NewAuthRequiredError()
	}
	return snap, nil
}

// requireApproved bootstraps the session and fails unless the author
// application is approved. The guard decision maps one-to-one onto the
// coded errors, so every protected command redirects the same way.
func (s *shell) requireApproved(ctx context.Context) (session.Snapshot, error) {
	s.store.CheckAuth(ctx)
	snap := s.store.Snapshot()

	switch guard.Decide(snap) {
	case guard.RedirectLogin:
		return snap, errors.NewAuthRequiredError()
	case guard.RedirectApply:
		return snap, errors.NewProfileRequiredError()
	case guard.RedirectPending:
		if snap.AuthorProfile.Status == api.AuthorStatusRejected {
			return snap, errors.NewProfileRejectedError()
		}
		return snap, errors.NewProfilePendingError()
	default:
		return snap, nil
	}
}

// formatterFor builds an output formatter from the --output flag
func formatterFor(cmd *cobra.Command) (ux.Formatter, error) {
	format, _ := cmd.Flags().GetString("output")
	return ux.NewFormatter(format, &ux.FormatterOptions{Writer: os.Stdout})
}

// textOutput reports whether the command renders human-readable text
func textOutput(cmd *cobra.Command) bool {
	format, _ := cmd.Flags().GetString("output")
	return format == "" || format == "text"
}
