package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	imagepkg "github.com/jaroslavdusek1/metasnap/internal/image"
	"github.com/jaroslavdusek1/metasnap/internal/pipeline"
)

const textPlain = "text/plain; charset=utf-8"

// Handlers serves the EXIF report over HTTP.
type Handlers struct {
	fetcher *imagepkg.Fetcher
}

// NewHandlers constructs Handlers downloading through fetcher.
func NewHandlers(fetcher *imagepkg.Fetcher) *Handlers {
	return &Handlers{fetcher: fetcher}
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// exifHandler runs the pipeline for the "url" query param and returns the
// plain-text report without progress lines.
func (h *Handlers) exifHandler(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.Data(http.StatusBadRequest, textPlain, []byte("missing url query parameter\n"))
		return
	}

	ctx := c.Request.Context()
	buf := new(bytes.Buffer)
	r := &pipeline.Runner{Fetcher: h.fetcher, Out: buf}

	outcome, err := r.Run(ctx, url)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("url", url).Msg("exif request failed")
		var de *imagepkg.DecodeError
		if errors.As(err, &de) {
			c.Data(http.StatusUnprocessableEntity, textPlain, []byte(err.Error()+"\n"))
			return
		}
		c.Data(http.StatusBadGateway, textPlain, []byte(err.Error()+"\n"))
		return
	}

	status := http.StatusOK
	if outcome == pipeline.OutcomeFetchFailed {
		status = http.StatusBadGateway
	}
	c.Data(status, textPlain, buf.Bytes())
}
