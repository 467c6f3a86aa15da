// Package app wires the client: transport, image cache, catalog store,
// order aggregate, and profile store.
package app

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/appetizers/internal/alert"
	"github.com/xenking/appetizers/internal/catalog"
	"github.com/xenking/appetizers/internal/imagecache"
	"github.com/xenking/appetizers/internal/order"
	"github.com/xenking/appetizers/internal/profile"
	"github.com/xenking/appetizers/internal/storage/file"
	"github.com/xenking/appetizers/internal/transport"
)

// Run constructs all client dependencies, loads the profile, fetches the
// catalog once, prefetches images, and prints an order summary. It is the
// single wiring point for the client binary.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("base_url", cfg.BaseURL))

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
	}

	client := transport.New(cfg.BaseURL, httpClient, lg.Named("transport"))
	cache := imagecache.New(client, lg.Named("imagecache"))
	store := catalog.NewStore(client, lg.Named("catalog"))

	profiles := profile.New(file.New(cfg.ProfilePath), lg.Named("profile"))
	if err := profiles.Load(ctx); err != nil {
		a := alert.FromError(err)
		lg.Warn(a.Title, zap.String("message", a.Message), zap.Error(err))
	} else if u := profiles.Current(); u.Email != "" {
		lg.Info("Profile loaded", zap.String("email", u.Email))
	}

	// Observe the fetch lifecycle before kicking it off.
	sub := store.Subscribe()
	defer sub.Close()

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()
	store.RequestFetch(fetchCtx)

	var st catalog.State
wait:
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case st = <-sub.States():
			lg.Debug("State changed", zap.Stringer("phase", st.Phase))
			switch st.Phase {
			case catalog.Loaded, catalog.Failed:
				break wait
			}
		}
	}

	if st.Phase == catalog.Failed {
		a := alert.FromError(st.Err)
		lg.Error(a.Title, zap.String("message", a.Message))
		return errors.Wrap(st.Err, "fetch catalog")
	}

	for _, item := range st.Items {
		lg.Info("Appetizer",
			zap.Int("id", item.ID),
			zap.String("name", item.Name),
			zap.String("price", item.Price.StringFixed(2)),
			zap.Int("calories", item.Calories),
		)
	}

	if cfg.Prefetch.Enabled {
		g, prefetchCtx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Prefetch.Concurrency)
		for _, item := range st.Items {
			if item.ImageURL == "" {
				continue
			}
			g.Go(func() error {
				cache.GetOrFetch(prefetchCtx, item.ImageURL)
				return nil
			})
		}
		_ = g.Wait()
		lg.Info("Images prefetched", zap.Int("cached", cache.Len()))
	}

	// Demo order: one of everything.
	o := order.New()
	for _, item := range st.Items {
		o.Add(item)
	}
	lg.Info("Order summary",
		zap.Int("items", o.ItemCount()),
		zap.String("total", o.TotalPrice().StringFixed(2)),
	)

	return nil
}
