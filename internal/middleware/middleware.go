package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Wrap applies middlewares so that the first argument ends up outermost.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
