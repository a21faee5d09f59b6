package engine

import "log/slog"

// Lifecycle turns host events into Application callbacks, in order and at most
// once per transition. Hosts call it from their frame thread only.
type Lifecycle struct {
	app Application
	log *slog.Logger

	started bool
	stopped bool
	paused  bool
}

// NewLifecycle wraps app. A nil logger uses slog.Default().
func NewLifecycle(app Application, log *slog.Logger) *Lifecycle {
	if log == nil {
		log = slog.Default()
	}
	return &Lifecycle{app: app, log: log.With("component", "lifecycle")}
}

// Start restores any saved state and then creates the application.
// It reports whether the run loop should proceed.
func (l *Lifecycle) Start(e Engine) bool {
	if l.started {
		return !l.stopped
	}
	l.started = true
	l.app.OnRestoreStateRequested()
	if !l.app.OnCreate(e) {
		l.log.Info("application declined to start")
		l.Stop()
		return false
	}
	return true
}

// Frame runs one update. It reports whether the run loop should continue.
func (l *Lifecycle) Frame(e Engine, elapsed float32) bool {
	if !l.started || l.stopped {
		return false
	}
	if !l.app.OnUpdate(e, elapsed) {
		l.log.Info("application requested exit")
		l.Stop()
		return false
	}
	return true
}

// Pause asks the application to save its state. Repeated pauses are ignored.
func (l *Lifecycle) Pause() {
	if !l.started || l.stopped || l.paused {
		return
	}
	l.paused = true
	l.log.Debug("pause")
	l.app.OnSaveStateRequested()
}

// Resume asks the application to restore the state saved by the last Pause.
func (l *Lifecycle) Resume() {
	if !l.started || l.stopped || !l.paused {
		return
	}
	l.paused = false
	l.log.Debug("resume")
	l.app.OnRestoreStateRequested()
}

// SetFocused maps a focus change onto Pause or Resume.
func (l *Lifecycle) SetFocused(focused bool) {
	if focused {
		l.Resume()
	} else {
		l.Pause()
	}
}

func (l *Lifecycle) LowMemory() {
	if !l.started || l.stopped {
		return
	}
	l.log.Warn("low memory warning")
	l.app.OnLowMemoryWarning()
}

// Stop destroys the application once.
func (l *Lifecycle) Stop() {
	if !l.started || l.stopped {
		return
	}
	l.stopped = true
	if !l.app.OnDestroy() {
		l.log.Warn("application reported an unclean shutdown")
	}
}

func (l *Lifecycle) Paused() bool  { return l.paused }
func (l *Lifecycle) Running() bool { return l.started && !l.stopped }
