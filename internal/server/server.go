package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/siue-cs/eddiebot/config"
	"github.com/siue-cs/eddiebot/internal/memory"
	"github.com/siue-cs/eddiebot/internal/retrieval"
	"github.com/siue-cs/eddiebot/internal/synthesis"
	"github.com/siue-cs/eddiebot/provider"
	"github.com/siue-cs/eddiebot/tools/web_fetch"
	"github.com/siue-cs/eddiebot/tools/web_fetch/cache"
)

// New assembles the echo instance with all routes wired to the given
// collaborators. Run builds the real ones; tests inject stubs.
func New(store memory.Store, retriever ContextRetriever, synth AnswerGenerator, fetcher web_fetch.Fetcher) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ch := &ChatHandler{
		Memory:    store,
		Retriever: retriever,
		Synth:     synth,
		Logger:    log.New(log.Writer(), "[CHAT] ", log.LstdFlags),
	}
	ch.Register(e)

	fh := &FetchHandler{Fetcher: fetcher}
	fh.Register(e)

	return e
}

// Run builds the production pipeline from configuration and serves it.
func Run(cfg *config.Config) error {
	store, err := memory.NewStore(memory.StoreType(cfg.Memory.Store), cfg)
	if err != nil {
		return err
	}

	llm, err := provider.NewProvider(cfg.LLM)
	if err != nil {
		return err
	}

	pageCache := cache.New(cfg.Cache.Dir, cfg.Cache.Freshness)
	fetcher := web_fetch.NewFetcher(cfg.Fetcher, pageCache)

	e := New(store, retrieval.New(fetcher), synthesis.New(llm), fetcher)

	log.Printf("listening on %s", cfg.Server.Address)
	return e.Start(cfg.Server.Address)
}
