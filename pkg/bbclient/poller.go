package bbclient

import (
	"context"
	"time"
)

// DefaultPollInterval matches the storefront's refresh cadence.
const DefaultPollInterval = 30 * time.Second

// Poller periodically re-fetches the product list. It replaces an always-on
// timer with an explicit loop tied to a context: cancel the context and the
// poller stops.
type Poller struct {
	client   *Client
	query    ProductQuery
	interval time.Duration
}

// NewPoller creates a poller with the given refresh interval; a
// non-positive interval falls back to DefaultPollInterval.
func NewPoller(client *Client, query ProductQuery, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		client:   client,
		query:    query,
		interval: interval,
	}
}

// Run fetches immediately, then on every tick, invoking fn with each result.
// Fetch errors are passed to fn; the loop keeps going until ctx is done.
func (p *Poller) Run(ctx context.Context, fn func(products []Product, err error)) {
	fetch := func() {
		products, err := p.client.Products(ctx, p.query)
		fn(products, err)
	}

	fetch()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fetch()
		}
	}
}
