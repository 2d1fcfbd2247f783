package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pthm/coverflow"
	cfecho "github.com/pthm/coverflow/adapters/echo"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	var (
		addr   string
		path   string
		images string
		debug  bool
	)
	flag.StringVar(&addr, "addr", getenv("COVERFLOW_ADDR", ":8080"), "listen address")
	flag.StringVar(&path, "path", coverflow.DefaultPath, "URL prefix for carousel routes")
	flag.StringVar(&images, "images", getenv("COVERFLOW_IMAGES", ""), "comma separated image URLs")
	flag.BoolVar(&debug, "debug", false, "log every flush and click")
	flag.Parse()

	urls := splitList(images)
	if len(urls) == 0 && flag.NArg() > 0 {
		urls = flag.Args()
	}

	e := echo.New()
	e.HideBanner = true
	if debug {
		e.Logger.SetLevel(log.DEBUG)
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	opts := []coverflow.Option{coverflow.WithPath(path)}
	if key := os.Getenv("COVERFLOW_KEY"); key != "" {
		opts = append(opts, coverflow.WithKey([]byte(key)))
	} else {
		e.Logger.Warn("COVERFLOW_KEY not set; using a random key, tokens will not survive restarts")
	}
	host := cfecho.Mount(e, opts...)

	e.GET("/", func(c echo.Context) error {
		cf := coverflow.New(urls)
		cf.AddImageSelectionListener(coverflow.ListenerFunc(func(ev coverflow.ImageSelectionEvent) {
			e.Logger.Infof("selected %q (index %d)", ev.URL, ev.SelectedIndex)
		}))
		id := host.Attach(cf)
		return cfecho.Render(c, page(host, id))
	})

	// Settings form: every field changed in one request reaches the client
	// as a single rebuild.
	e.POST("/settings/:id", func(c echo.Context) error {
		id := c.Param("id")
		err := host.Do(c.Request().Context(), id, func(cf *coverflow.CoverFlow) {
			applySettings(cf, c)
		})
		if coverflow.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		if err != nil {
			return err
		}
		return cfecho.Render(c, host.Component(id))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		e.Logger.Infof("listening on %s (%d images)", addr, len(urls))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatalf("listen: %v", err)
		}
	}()

	<-done
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		e.Logger.Errorf("graceful shutdown failed: %v", err)
		_ = srv.Close()
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func applySettings(cf *coverflow.CoverFlow, c echo.Context) {
	if v := c.FormValue("style"); v != "" {
		cf.SetStyle(coverflow.Style(strings.ToUpper(v)))
	}
	if v, err := strconv.Atoi(c.FormValue("maxSize")); err == nil {
		cf.SetMaxImageSize(v)
	}
	if v, err := strconv.Atoi(c.FormValue("start")); err == nil {
		cf.SetStartElement(v)
	}
	if v, err := strconv.Atoi(c.FormValue("autoplay")); err == nil {
		cf.SetAutoplay(v)
	} else {
		cf.DisableAutoplay()
	}
	cf.SetKeyboardEnabled(c.FormValue("keyboard") == "on")
	cf.SetMousewheelEnabled(c.FormValue("mousewheel") == "on")
	cf.SetNavigationButtonsEnabled(c.FormValue("buttons") == "on")
	if !cf.Autoplay() {
		cf.SetLoopEnabled(c.FormValue("loop") == "on")
	}
}
