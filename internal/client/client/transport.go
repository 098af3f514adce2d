package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/skillclip/internal/common"
	"github.com/google/uuid"
)

type accessTokenKey struct{}

// withAccessToken attaches a bearer token to ctx for the outgoing request.
func withAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

func accessTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}

// headerTransport decorates requests with a request id and, when the request
// context carries one, the bearer token.
type headerTransport struct {
	base  http.RoundTripper
	newID func() string
}

func newHeaderTransport(base http.RoundTripper) *headerTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &headerTransport{base: base, newID: uuid.NewString}
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if r.Header.Get(common.RequestIDHeaderName) == "" {
		r.Header.Set(common.RequestIDHeaderName, t.newID())
	}
	if token := accessTokenFrom(r.Context()); token != "" {
		r.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}
	r.Header.Set("Accept", "application/json")
	return t.base.RoundTrip(r)
}
