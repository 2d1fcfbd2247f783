// Package cfecho provides Echo framework integration for coverflow hosts.
//
// Mount a host onto an Echo instance or group:
//
//	e := echo.New()
//	host := cfecho.Mount(e)
//	id := host.Attach(coverflow.New(urls))
//
// Or mount on a group with middleware:
//
//	g := e.Group("/app", authMiddleware)
//	host := cfecho.MountGroup(g, "/app", coverflow.WithPath("/app/_cf/"))
package cfecho

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/coverflow"
)

// Mount creates a host, routes its path on e and logs through e.Logger
// unless coverflow.WithLogger is among opts.
//
//	host := cfecho.Mount(e, coverflow.WithKey(key))
func Mount(e *echo.Echo, opts ...coverflow.Option) *coverflow.Host {
	host := coverflow.NewHost(append([]coverflow.Option{coverflow.WithLogger(e.Logger)}, opts...)...)
	e.Any(host.Path()+"*", echo.WrapHandler(host.Handler()))
	return host
}

// MountGroup creates a host and routes it on g, so the host shares the
// group's middleware (auth, logging, etc.). prefix is the group's prefix.
//
// Rendered markup links to the host by absolute path, so the host path
// given through coverflow.WithPath must include the group prefix:
//
//	g := e.Group("/app", authMiddleware)
//	host := cfecho.MountGroup(g, "/app", coverflow.WithPath("/app/_cf/"))
func MountGroup(g *echo.Group, prefix string, opts ...coverflow.Option) *coverflow.Host {
	host := coverflow.NewHost(opts...)
	path := host.Path()
	if !strings.HasPrefix(path, prefix+"/") {
		panic(fmt.Sprintf("cfecho: host path %q is outside group prefix %q", path, prefix))
	}
	g.Any(strings.TrimPrefix(path, prefix)+"*", echo.WrapHandler(host.Handler()))
	return host
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return cfecho.Render(c, host.Component(id))
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
