package remote

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/jetkvm/remote/internal/dispatch"
	"github.com/jetkvm/remote/internal/display"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// StatusResponse is served on /status.
type StatusResponse struct {
	Name     string         `json:"name"`
	Version  string         `json:"version"`
	Backend  string         `json:"backend"`
	Device   DeviceStatus   `json:"device"`
	Display  *display.State `json:"display,omitempty"`
	HID      *HIDStatus     `json:"hid,omitempty"`
	Dispatch dispatch.Stats `json:"dispatch"`
	Uptime   string         `json:"uptime"`
}

type statusFunc func() StatusResponse

func setupRouter(gatherer prometheus.Gatherer, status statusFunc) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	gin.DisableConsoleColor()

	r := gin.New()
	r.Use(
		logger.SetLogger(
			logger.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
				return webLogger.With().Logger()
			}),
			logger.WithSkipPath([]string{"/metrics"}),
		),
		gin.Recovery(),
	)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, status())
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

// runWebServer serves the debug endpoints on listen until ctx is done.
func runWebServer(ctx context.Context, listen string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              listen,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	webLogger.Info().Str("listen", listen).Msg("Starting debug web server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
