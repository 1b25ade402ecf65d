// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package devshell_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/nestedjson/apps/jsoneditor"
	"github.com/framegrace/nestedjson/fieldtype"
	"github.com/framegrace/nestedjson/internal/devshell"
	"github.com/framegrace/nestedjson/tree"
	"github.com/framegrace/nestedjson/ui/core"
)

const waitFor = time.Second

// recordingApp logs every call it receives as a short string.
type recordingApp struct {
	mu      sync.Mutex
	events  []string
	renders int
	refresh chan<- bool
	started chan struct{}
	stop    chan struct{}
	once    sync.Once
	runErr  error
}

var (
	_ core.MouseHandler = (*recordingApp)(nil)
	_ core.PasteHandler = (*recordingApp)(nil)
)

func newRecordingApp() *recordingApp {
	return &recordingApp{started: make(chan struct{}), stop: make(chan struct{})}
}

func (a *recordingApp) record(format string, args ...interface{}) {
	a.mu.Lock()
	a.events = append(a.events, fmt.Sprintf(format, args...))
	a.mu.Unlock()
}

func (a *recordingApp) Run() error {
	close(a.started)
	<-a.stop
	return a.runErr
}

func (a *recordingApp) Stop() { a.once.Do(func() { close(a.stop) }) }

func (a *recordingApp) Resize(cols, rows int) { a.record("resize %dx%d", cols, rows) }

func (a *recordingApp) Render() [][]core.Cell {
	a.mu.Lock()
	a.renders++
	a.mu.Unlock()
	return [][]core.Cell{{{Ch: '{'}, {Ch: '}'}}}
}

func (a *recordingApp) HandleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyRune {
		a.record("key %c", ev.Rune())
		return
	}
	a.record("key %s", tcell.KeyNames[ev.Key()])
}

func (a *recordingApp) HandleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	a.record("mouse %d,%d", x, y)
}

func (a *recordingApp) HandlePaste(data []byte) { a.record("paste %q", data) }

func (a *recordingApp) SetRefreshNotifier(ch chan<- bool) { a.refresh = ch }
func (a *recordingApp) GetTitle() string                  { return "recording" }

func (a *recordingApp) seen(event string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range a.events {
		if e == event {
			return true
		}
	}
	return false
}

func (a *recordingApp) renderCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renders
}

// simulate installs a simulation screen for the duration of the test.
func simulate(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	devshell.SetScreenFactory(func() (tcell.Screen, error) { return screen, nil })
	t.Cleanup(func() { devshell.SetScreenFactory(nil) })
	return screen
}

// post queues ev, waiting while the simulation queue is full.
func post(t *testing.T, screen tcell.Screen, ev tcell.Event) {
	t.Helper()
	deadline := time.Now().Add(waitFor)
	for screen.PostEvent(ev) != nil {
		if time.Now().After(deadline) {
			t.Fatal("event queue stayed full")
		}
		time.Sleep(time.Millisecond)
	}
}

func postText(t *testing.T, screen tcell.Screen, text string) {
	t.Helper()
	for _, r := range text {
		post(t, screen, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

// startedEditor reports when the shell has initialised the screen and
// started the editor.
type startedEditor struct {
	*jsoneditor.Editor
	started chan struct{}
}

func (e startedEditor) Run() error {
	close(e.started)
	return e.Editor.Run()
}

func runAsync(fn func() error) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- fn() }()
	return errCh
}

func waitResult(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(waitFor):
		t.Fatal("run did not return")
		return nil
	}
}

func TestRunForwardsInput(t *testing.T) {
	screen := simulate(t)
	app := newRecordingApp()
	errCh := runAsync(func() error {
		return devshell.Run(func(args []string) (core.App, error) {
			assert.Equal(t, []string{"doc.json"}, args)
			return app, nil
		}, []string{"doc.json"})
	})
	<-app.started

	assert.Positive(t, app.renderCount(), "first frame is drawn before input")
	before := app.renderCount()
	app.refresh <- true
	assert.Eventually(t, func() bool { return app.renderCount() > before }, waitFor, 5*time.Millisecond)

	post(t, screen, tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone))
	post(t, screen, tcell.NewEventResize(60, 15))
	post(t, screen, tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone))
	post(t, screen, tcell.NewEventPaste(true))
	postText(t, screen, "a")
	post(t, screen, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	postText(t, screen, "b")
	post(t, screen, tcell.NewEventPaste(false))

	for _, want := range []string{"key k", "resize 60x15", "mouse 3,4", `paste "a\nb"`} {
		assert.Eventually(t, func() bool { return app.seen(want) }, waitFor, 5*time.Millisecond, want)
	}
	assert.False(t, app.seen("key a"), "pasted runes are not delivered as keys")

	post(t, screen, tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone))
	require.NoError(t, waitResult(t, errCh))
	select {
	case <-app.stop:
	default:
		t.Fatal("Ctrl+C did not stop the app")
	}
}

func TestRunReturnsTheAppError(t *testing.T) {
	simulate(t)
	app := newRecordingApp()
	app.runErr = errors.New("finished")
	devshell.Register("recording", func([]string) (core.App, error) { return app, nil })
	assert.Contains(t, devshell.Names(), "recording")

	errCh := runAsync(func() error { return devshell.RunApp("recording", nil) })
	<-app.started
	app.Stop()
	assert.EqualError(t, waitResult(t, errCh), "finished")
}

func TestRunDrivesFieldEditor(t *testing.T) {
	screen := simulate(t)
	opts := fieldtype.Options{AllowCreateNewFields: true, EnableSearch: true}
	editor := jsoneditor.New(jsoneditor.NewForm(tree.Tree{"profile": tree.Tree{"city": "Paris"}}, opts), "doc.json", nil)
	app := startedEditor{Editor: editor, started: make(chan struct{})}
	errCh := runAsync(func() error { return devshell.RunWith(app) })
	<-app.started

	// The first row is focused: append to the city, then add a field.
	postText(t, screen, "!")
	post(t, screen, tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl))
	postText(t, screen, "profile.zip=75001")
	post(t, screen, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	want := tree.Tree{"profile": tree.Tree{"city": "Paris!", "zip": json.Number("75001")}}
	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(want, editor.Value())
	}, waitFor, 5*time.Millisecond)

	post(t, screen, tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
	require.NoError(t, waitResult(t, errCh))
}

func TestRunPropagatesBuilderError(t *testing.T) {
	want := errors.New("boom")
	err := devshell.Run(func([]string) (core.App, error) { return nil, want }, nil)
	assert.ErrorIs(t, err, want)
}

func TestRunAppUnknownReturnsError(t *testing.T) {
	assert.Error(t, devshell.RunApp("does-not-exist", nil))
}
