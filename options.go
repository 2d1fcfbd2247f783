package coverflow

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/labstack/gommon/log"
)

// DefaultPath is where Host routes are mounted unless WithPath is given.
const DefaultPath = "/_cf/"

// Logger is the subset of a leveled logger the host writes to.
// *github.com/labstack/gommon/log.Logger and echo.Logger satisfy it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Option configures NewHost.
type Option func(*options)

type options struct {
	key    []byte
	path   string
	sealed bool
	logger Logger
}

// WithKey sets the key session tokens are signed (or sealed) with.
// It should be at least 32 bytes of random data and stable across
// restarts if tokens must survive them. If not provided, a random key is
// generated.
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithPath sets the URL prefix for host routes. Defaults to DefaultPath.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithSealedTokens encrypts session tokens instead of signing them, making
// session ids opaque to the client.
func WithSealedTokens() Option {
	return func(o *options) {
		o.sealed = true
	}
}

// WithLogger sets the logger. Defaults to a gommon logger at INFO level.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) *options {
	o := &options{path: DefaultPath}
	for _, opt := range opts {
		opt(o)
	}

	if !strings.HasPrefix(o.path, "/") {
		o.path = "/" + o.path
	}
	if !strings.HasSuffix(o.path, "/") {
		o.path += "/"
	}

	if o.key == nil {
		o.key = make([]byte, 32)
		if _, err := rand.Read(o.key); err != nil {
			panic(fmt.Sprintf("coverflow: failed to generate random key: %v", err))
		}
	}

	if o.logger == nil {
		o.logger = log.New("coverflow")
	}
	return o
}
