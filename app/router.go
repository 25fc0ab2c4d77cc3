package app

import (
	"regexp"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]cattery.Handler
}

var _ cattery.Registry = (*Router)(nil)
var _ cattery.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]cattery.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h cattery.Handler) {
	if !isPath(path) {
		panic(errors.Wrapf(errors.ErrHuman, "invalid path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(errors.Wrapf(errors.ErrHuman, "re-registering route %q", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path. If no path
// is found, returns a noSuchPath Handler. This function always returns
// a non nil value.
func (r *Router) Handler(path string) cattery.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx cattery.Context, store cattery.KVStore, tx cattery.Tx) (*cattery.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrInput, "nil message")
	}
	return r.Handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx cattery.Context, store cattery.KVStore, tx cattery.Tx) (*cattery.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrInput, "nil message")
	}
	return r.Handler(msg.Path()).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound error regardless of the
// arguments provided.
type notFoundHandler string

func (path notFoundHandler) Check(cattery.Context, cattery.KVStore, cattery.Tx) (*cattery.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(cattery.Context, cattery.KVStore, cattery.Tx) (*cattery.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
