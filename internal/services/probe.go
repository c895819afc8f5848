package services

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// ProbeNotifier is a Notifier for hosts without native network-state
// notifications: it periodically probes a reachability endpoint and turns
// probe success/failure transitions into change events. The connectivity
// service itself stays notification-driven.
type ProbeNotifier struct {
	probe    func(ctx context.Context) error
	interval time.Duration
	timeout  time.Duration

	mu     sync.Mutex
	online bool
	stop   chan struct{}
}

// NewProbeNotifier probes endpoint with an HTTP HEAD request every interval.
func NewProbeNotifier(endpoint string, interval, timeout time.Duration) *ProbeNotifier {
	probe := func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, endpoint, nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		return nil
	}
	return NewProbeNotifierFunc(probe, interval, timeout)
}

// NewProbeNotifierFunc probes with a caller-supplied check. Tests inject a
// fake probe here.
func NewProbeNotifierFunc(probe func(ctx context.Context) error, interval, timeout time.Duration) *ProbeNotifier {
	return &ProbeNotifier{
		probe:    probe,
		interval: interval,
		timeout:  timeout,
		online:   true,
	}
}

// IsOnline reports the outcome of the most recent probe. Before the first
// probe the notifier assumes online.
func (p *ProbeNotifier) IsOnline() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.online
}

// Attach starts the probe loop and reports transitions to onChange.
// The returned detach stops the loop.
func (p *ProbeNotifier) Attach(onChange func(online bool)) (func(), error) {
	p.mu.Lock()
	if p.stop != nil {
		close(p.stop)
	}
	stop := make(chan struct{})
	p.stop = stop
	p.mu.Unlock()

	go p.watch(stop, onChange)

	return func() { close(stop) }, nil
}

func (p *ProbeNotifier) watch(stop chan struct{}, onChange func(online bool)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
			err := p.probe(ctx)
			cancel()

			online := err == nil

			p.mu.Lock()
			changed := p.online != online
			p.online = online
			p.mu.Unlock()

			if changed {
				onChange(online)
			}

		case <-stop:
			return
		}
	}
}
