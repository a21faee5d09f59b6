package engine

import (
	"image"
	"reflect"
	"testing"
)

// testEngine is a Canvas with no input.
type testEngine struct{ *Canvas }

func (testEngine) TouchPos() image.Point  { return image.Point{} }
func (testEngine) Touches() []image.Point { return nil }
func (testEngine) FPS() int               { return 0 }

func newTestEngine() testEngine { return testEngine{NewCanvas(8, 8)} }

type scriptedApp struct {
	calls      []string
	createOK   bool
	updatesOK  int
	destroyRet bool
}

func (a *scriptedApp) OnCreate(Engine) bool {
	a.calls = append(a.calls, "create")
	return a.createOK
}

func (a *scriptedApp) OnUpdate(Engine, float32) bool {
	a.calls = append(a.calls, "update")
	a.updatesOK--
	return a.updatesOK >= 0
}

func (a *scriptedApp) OnDestroy() bool {
	a.calls = append(a.calls, "destroy")
	return a.destroyRet
}

func (a *scriptedApp) OnSaveStateRequested()    { a.calls = append(a.calls, "save") }
func (a *scriptedApp) OnRestoreStateRequested() { a.calls = append(a.calls, "restore") }
func (a *scriptedApp) OnLowMemoryWarning()      { a.calls = append(a.calls, "lowmem") }

func TestLifecycleOrder(t *testing.T) {
	app := &scriptedApp{createOK: true, updatesOK: 10, destroyRet: true}
	l := NewLifecycle(app, nil)
	c := newTestEngine()

	if l.Frame(c, 0.1) {
		t.Fatal("frame before start should not run")
	}
	if !l.Start(c) {
		t.Fatal("start failed")
	}
	l.Start(c)
	l.Frame(c, 0.016)
	l.SetFocused(false)
	l.SetFocused(false)
	if !l.Paused() {
		t.Error("not paused after losing focus")
	}
	l.SetFocused(true)
	l.SetFocused(true)
	l.LowMemory()
	l.Stop()
	l.Stop()
	l.Pause()

	want := []string{"restore", "create", "update", "save", "restore", "lowmem", "destroy"}
	if !reflect.DeepEqual(app.calls, want) {
		t.Fatalf("calls = %v, want %v", app.calls, want)
	}
	if l.Running() {
		t.Error("still running after stop")
	}
}

func TestLifecycleCreateDeclined(t *testing.T) {
	app := &scriptedApp{createOK: false, destroyRet: true}
	l := NewLifecycle(app, nil)
	if l.Start(newTestEngine()) {
		t.Fatal("start should report false")
	}
	want := []string{"restore", "create", "destroy"}
	if !reflect.DeepEqual(app.calls, want) {
		t.Fatalf("calls = %v, want %v", app.calls, want)
	}
}

func TestLifecycleUpdateStops(t *testing.T) {
	app := &scriptedApp{createOK: true, updatesOK: 1, destroyRet: true}
	l := NewLifecycle(app, nil)
	c := newTestEngine()
	l.Start(c)
	if !l.Frame(c, 0.1) {
		t.Fatal("first frame should continue")
	}
	if l.Frame(c, 0.1) {
		t.Fatal("second frame should stop")
	}
	if l.Frame(c, 0.1) {
		t.Fatal("frames after stop should not run")
	}
	if got := app.calls[len(app.calls)-1]; got != "destroy" {
		t.Fatalf("last call = %s, want destroy", got)
	}
}
