package ebitenhost

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"hw3d-demo/internal/engine"
)

type recordingApp struct {
	calls []string
}

func (a *recordingApp) record(c string) { a.calls = append(a.calls, c) }

func (a *recordingApp) OnCreate(engine.Engine) bool          { a.record("create"); return true }
func (a *recordingApp) OnUpdate(engine.Engine, float32) bool { a.record("update"); return true }
func (a *recordingApp) OnDestroy() bool                      { a.record("destroy"); return true }
func (a *recordingApp) OnSaveStateRequested()                { a.record("save") }
func (a *recordingApp) OnRestoreStateRequested()             { a.record("restore") }
func (a *recordingApp) OnLowMemoryWarning()                  { a.record("lowmem") }

func startedGame(t *testing.T) (*Game, *recordingApp) {
	t.Helper()
	app := &recordingApp{}
	g := NewGame(app, 32, 32, nil)
	g.started = true
	if !g.lifecycle.Start(g) {
		t.Fatal("start failed")
	}
	app.calls = app.calls[:0]
	return g, app
}

func TestPauseNowSavesBeforeReturning(t *testing.T) {
	g, app := startedGame(t)

	g.PauseNow()
	if !reflect.DeepEqual(app.calls, []string{"save"}) {
		t.Fatalf("after PauseNow calls = %v, want [save]", app.calls)
	}

	g.ResumeNow()
	g.LowMemoryNow()
	g.Close()
	want := []string{"save", "restore", "lowmem", "destroy"}
	if !reflect.DeepEqual(app.calls, want) {
		t.Fatalf("calls = %v, want %v", app.calls, want)
	}
}

func TestPauseNowWaitsForFrame(t *testing.T) {
	g, app := startedGame(t)

	// hold the lock the way a running Update does
	g.mu.Lock()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		g.PauseNow()
	}()
	time.Sleep(20 * time.Millisecond)
	if len(app.calls) != 0 {
		t.Fatalf("pause ran during a frame: %v", app.calls)
	}
	g.mu.Unlock()
	wg.Wait()

	if !reflect.DeepEqual(app.calls, []string{"save"}) {
		t.Fatalf("calls = %v, want [save]", app.calls)
	}
}

func TestFocusChangesMapToSaveAndRestore(t *testing.T) {
	g, app := startedGame(t)

	g.setFocused(true)
	g.setFocused(false)
	g.setFocused(false)
	g.setFocused(true)

	want := []string{"save", "restore"}
	if !reflect.DeepEqual(app.calls, want) {
		t.Fatalf("calls = %v, want %v", app.calls, want)
	}
}
