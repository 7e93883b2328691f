package shorturl

import "context"

// Redirection is the target and redirect status resolved for an identifier.
type Redirection struct {
	Target string
	Mode   int
}

// Redirector is the use case that resolves identifiers to redirections.
type Redirector struct {
	store Repository
}

// NewRedirector creates the redirect use case.
func NewRedirector(store Repository) *Redirector {
	return &Redirector{store: store}
}

// Redirect resolves an identifier. It returns ErrNotFound for unknown ids.
func (r *Redirector) Redirect(ctx context.Context, id ID) (*Redirection, error) {
	link, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Redirection{Target: link.Target, Mode: link.Mode}, nil
}
