// Package monitor keeps an eye on the RTPI site between user requests.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dublin-on-time/dublinontime/internal/arrivals"
	"github.com/dublin-on-time/dublinontime/internal/stop"
)

// ArrivalSource is the slice of the RTPI client the monitor probes.
type ArrivalSource interface {
	StopArrivals(ctx context.Context, id stop.ID) ([]arrivals.Row, error)
}

// AlertSink receives outage and recovery alerts.
type AlertSink interface {
	SendUpstreamDown(reason string) error
	SendUpstreamRecovered() error
}

// UpstreamMonitor periodically scrapes a known-good reference stop and
// alerts on the reachable/unreachable transitions, so an RTPI outage is
// noticed before users start getting error responses.
type UpstreamMonitor struct {
	source        ArrivalSource
	alerts        AlertSink
	logger        *logrus.Logger
	referenceStop stop.ID
	interval      time.Duration

	mu   sync.Mutex
	down bool

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewUpstreamMonitor(source ArrivalSource, alerts AlertSink, referenceStop stop.ID, interval time.Duration, logger *logrus.Logger) *UpstreamMonitor {
	return &UpstreamMonitor{
		source:        source,
		alerts:        alerts,
		logger:        logger,
		referenceStop: referenceStop,
		interval:      interval,
		stopCh:        make(chan struct{}),
	}
}

func (m *UpstreamMonitor) Start(ctx context.Context) {
	m.wg.Add(1)
	go m.run(ctx)
}

func (m *UpstreamMonitor) Stop() {
	close(m.stopCh)
	m.wg.Wait()
}

func (m *UpstreamMonitor) run(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Probe(ctx)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("upstream monitor stopped: context cancelled")
			return
		case <-m.stopCh:
			m.logger.Info("upstream monitor stopped: stop signal received")
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

// Probe scrapes the reference stop once and alerts if the site's state
// changed since the previous probe. Repeated failures alert only once.
func (m *UpstreamMonitor) Probe(ctx context.Context) {
	rows, err := m.source.StopArrivals(ctx, m.referenceStop)

	m.mu.Lock()
	wasDown := m.down
	m.down = err != nil
	m.mu.Unlock()

	if err != nil {
		m.logger.WithFields(logrus.Fields{
			"reference_stop": m.referenceStop,
			"error":          err,
		}).Warn("rtpi probe failed")

		if !wasDown && m.alerts != nil {
			if alertErr := m.alerts.SendUpstreamDown(err.Error()); alertErr != nil {
				m.logger.WithError(alertErr).Error("failed to send outage alert")
			}
		}
		return
	}

	m.logger.WithFields(logrus.Fields{
		"reference_stop": m.referenceStop,
		"rows":           len(rows),
	}).Debug("rtpi probe ok")

	if wasDown && m.alerts != nil {
		if alertErr := m.alerts.SendUpstreamRecovered(); alertErr != nil {
			m.logger.WithError(alertErr).Error("failed to send recovery alert")
		}
	}
}
