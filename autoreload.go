package fieldscope

import (
	"context"
	"time"

	"github.com/agentstation/fieldscope/pkg/constants"
	"github.com/agentstation/fieldscope/pkg/errors"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoReloader = (*client)(nil)

// AutoReloader provides controls for periodic dataset reloads.
type AutoReloader interface {
	// AutoReloadOn begins periodic reloads
	AutoReloadOn() error

	// AutoReloadOff stops periodic reloads
	AutoReloadOff() error
}

// AutoReloadOn begins periodic reloads at the configured interval.
func (c *client) AutoReloadOn() error {
	if c.options.autoReloadInterval <= 0 {
		return &errors.ValidationError{
			Field:   "autoReloadInterval",
			Value:   c.options.autoReloadInterval,
			Message: "reload interval must be positive",
		}
	}

	// Stop any running loop first
	if err := c.AutoReloadOff(); err != nil {
		return err
	}

	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	ticker := time.NewTicker(c.options.autoReloadInterval)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.reloadTicker = ticker
	c.reloadCancel = cancel
	c.reloadDone = done

	go func() {
		defer close(done)
		for {
			select {
			case <-ticker.C:
				reloadCtx, reloadCancel := context.WithTimeout(ctx, constants.LoadTimeout)
				err := c.Reload(reloadCtx)
				reloadCancel()

				if err != nil && (errors.IsCanceled(err) || ctx.Err() != nil) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// AutoReloadOff stops periodic reloads and waits for the loop to exit.
func (c *client) AutoReloadOff() error {
	c.reloadMu.Lock()
	ticker, cancel, done := c.reloadTicker, c.reloadCancel, c.reloadDone
	c.reloadTicker, c.reloadCancel, c.reloadDone = nil, nil, nil
	c.reloadMu.Unlock()

	if ticker != nil {
		ticker.Stop()
	}
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	return nil
}
