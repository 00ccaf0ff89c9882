package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siue-cs/eddiebot/tools/web_fetch"
)

const previewMaxChars = 1000

// FetchHandler exposes the page fetcher as a diagnostic endpoint.
type FetchHandler struct {
	Fetcher web_fetch.Fetcher
}

func (h *FetchHandler) Register(e *echo.Echo) {
	e.GET("/fetch", h.Fetch)
}

func (h *FetchHandler) Fetch(c echo.Context) error {
	url := c.QueryParam("url")
	if url == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "url query parameter is required")
	}
	text, err := h.Fetcher.Fetch(c.Request().Context(), url)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": err.Error()})
	}
	if len(text) > previewMaxChars {
		text = text[:previewMaxChars]
	}
	return c.JSON(http.StatusOK, FetchResponse{URL: url, TextPreview: text})
}
