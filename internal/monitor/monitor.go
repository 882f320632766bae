package monitor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"inkscan/internal/model"
)

// watchDebounce coalesces the burst of fsnotify events one file copy
// produces into a single wake-up.
const watchDebounce = 500 * time.Millisecond

// Start loads the persisted cutoff and begins the poll loop. The first
// sweep runs immediately so a backlog from downtime is picked up.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.status != StatusStopped {
		m.mu.Unlock()
		return fmt.Errorf("monitor already started")
	}

	st, err := m.stateStore.Load()
	if err != nil {
		m.l.Warnf(ctx, "monitor: load state: %v (starting from zero)", err)
	}
	m.last = st.LastProcessedTime
	m.status = StatusScheduled
	m.stopCh = make(chan struct{})
	m.mu.Unlock()

	if m.watcher != nil {
		if err := m.watcher.Add(m.cfg.WatchFolder); err != nil {
			m.l.Warnf(ctx, "monitor: watch %s: %v (falling back to polling only)", m.cfg.WatchFolder, err)
		} else {
			m.wg.Add(1)
			go m.watchLoop(ctx)
		}
	}

	m.wg.Add(1)
	go m.run(ctx)

	m.l.Infof(ctx, "monitor: watching %s every %s (pattern %q)", m.cfg.WatchFolder, m.interval, m.cfg.Pattern)
	return nil
}

// Stop prevents the next tick. An in-flight poll finishes its batch
// before the loop exits.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if m.status == StatusStopped {
		m.mu.Unlock()
		return
	}
	m.status = StatusStopped
	close(m.stopCh)
	m.mu.Unlock()

	m.wg.Wait()
	if m.watcher != nil {
		m.watcher.Close()
	}
}

// Status reports the lifecycle state.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Events returns a copy of the most recent scan events, oldest first.
func (m *Monitor) Events() []model.ScanEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ScanEvent, len(m.recent))
	copy(out, m.recent)
	return out
}

func (m *Monitor) run(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.Poll(ctx)
		case <-m.wakeCh:
			m.Poll(ctx)
		}
	}
}

// Poll runs one sweep now. Ticker fires, fsnotify wakes, and manual calls
// all funnel through here; overlapping calls are dropped.
func (m *Monitor) Poll(ctx context.Context) {
	m.mu.Lock()
	if m.polling || m.status == StatusStopped {
		m.mu.Unlock()
		return
	}
	m.polling = true
	m.status = StatusPolling
	cutoff := m.last
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.polling = false
		if m.status == StatusPolling {
			m.status = StatusScheduled
		}
		m.mu.Unlock()
	}()

	candidates, err := m.lister.List(ctx)
	if err != nil {
		m.l.Errorf(ctx, "monitor: list %s: %v", m.cfg.WatchFolder, err)
		return
	}

	batch := 0
	for _, c := range candidates {
		if !m.eligible(c, cutoff) {
			continue
		}
		m.handleFile(ctx, c)
		batch++
	}

	// The cutoff advances after every completed cycle, failures included;
	// the session dedup set covers re-listing inside the cycle window.
	now := m.clock()
	m.mu.Lock()
	m.last = now
	m.mu.Unlock()
	if err := m.stateStore.Save(State{LastProcessedTime: now}); err != nil {
		m.l.Errorf(ctx, "monitor: save state: %v", err)
	}

	if batch > 0 {
		m.l.Infof(ctx, "monitor: processed %d file(s)", batch)
	}
}

func (m *Monitor) eligible(c Candidate, cutoff time.Time) bool {
	if !m.filter.Match(c.Name) {
		return false
	}
	if !c.CreatedAt.After(cutoff) {
		return false
	}
	if m.dedup.Contains(c.Path) {
		return false
	}
	return true
}

// handleFile processes one candidate. Failures are contained here so the
// rest of the batch continues.
func (m *Monitor) handleFile(ctx context.Context, c Candidate) {
	m.l.Infof(ctx, "monitor: processing %s", c.Path)

	event := model.ScanEvent{
		Path:         c.Path,
		Source:       model.ScanSourceMonitor,
		DiscoveredAt: c.CreatedAt,
	}

	out, err := m.processor.ProcessFile(ctx, c.Path)
	if err != nil {
		event.Status = model.ScanStatusFailed
		event.Error = err.Error()
		event.ProcessedAt = m.clock()
		m.record(event)

		m.l.Errorf(ctx, "monitor: process %s: %v", c.Path, err)
		m.notify(ctx, fmt.Sprintf("⚠️ Scan failed for %s: %v", c.Name, err))
		return
	}

	event.Status = model.ScanStatusProcessed
	event.NoteID = out.Note.ID
	event.TasksFiled = out.TasksExtracted

	// Dedup before the post action: if the move fails the file stays in
	// the folder but must not run through the pipeline again.
	m.dedup.Add(c.Path, struct{}{})

	if m.postAction != nil {
		if err := m.postAction.Do(ctx, c.Path); err != nil {
			m.l.Errorf(ctx, "monitor: post action %s: %v", c.Path, err)
		}
	}

	event.ProcessedAt = m.clock()
	m.record(event)
}

func (m *Monitor) record(ev model.ScanEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recent = append(m.recent, ev)
	if len(m.recent) > recentEventsCap {
		m.recent = m.recent[len(m.recent)-recentEventsCap:]
	}
}

func (m *Monitor) notify(ctx context.Context, text string) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Notify(ctx, text); err != nil {
		m.l.Warnf(ctx, "monitor: notify: %v", err)
	}
}

// watchLoop nudges the poll loop when files land in the watch folder, so
// scans start within the debounce window instead of a full poll interval.
func (m *Monitor) watchLoop(ctx context.Context) {
	defer m.wg.Done()

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case ev, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !m.filter.Match(filepath.Base(ev.Name)) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, m.wake)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.l.Warnf(ctx, "monitor: watcher: %v", err)
		}
	}
}

func (m *Monitor) wake() {
	select {
	case m.wakeCh <- struct{}{}:
	default:
	}
}
