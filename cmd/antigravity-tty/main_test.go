package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/antigravity/pkg/config"
	"github.com/decker502/antigravity/pkg/field"
)

func newTestTerminalField(t *testing.T) *terminalField {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error: %v", err)
	}
	screen.SetSize(40, 20)
	t.Cleanup(screen.Fini)

	cfg, err := config.DefaultFieldConfig().ToFieldConfig()
	if err != nil {
		t.Fatalf("ToFieldConfig() error: %v", err)
	}
	tf := newTerminalField(screen, cfg, 1)
	if err := tf.start(); err != nil {
		t.Fatalf("start() error: %v", err)
	}
	t.Cleanup(tf.sim.Stop)
	return tf
}

func TestTerminalField_Start(t *testing.T) {
	tf := newTestTerminalField(t)

	w, h := tf.sim.Viewport()
	if w != 320 || h != 320 {
		t.Errorf("viewport = %vx%v, want 320x320", w, h)
	}

	tf.tick()
	tf.tick()
	if tf.scheduler.Frames() != 2 {
		t.Errorf("frames = %d, want 2", tf.scheduler.Frames())
	}
}

func TestTerminalField_HandleEvent(t *testing.T) {
	tests := []struct {
		name     string
		ev       tcell.Event
		wantQuit bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf := newTestTerminalField(t)
			if got := tf.handleEvent(tt.ev); got == tt.wantQuit {
				t.Errorf("handleEvent() = %v, want %v", got, !tt.wantQuit)
			}
		})
	}
}

func TestTerminalField_LinkToggle(t *testing.T) {
	tf := newTestTerminalField(t)

	tf.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone))
	if !tf.sim.LinkMode() {
		t.Error("'l' should enable link mode")
	}
	tf.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'L', tcell.ModNone))
	if tf.sim.LinkMode() {
		t.Error("'L' should disable link mode")
	}
}

func TestTerminalField_Mouse(t *testing.T) {
	tf := newTestTerminalField(t)

	if x, _ := tf.sim.Pointer(); x != field.PointerNone {
		t.Fatalf("initial pointer x = %v, want sentinel", x)
	}

	tf.handleEvent(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))
	x, y := tf.sim.Pointer()
	if x != 28 || y != 40 {
		t.Errorf("pointer = (%v, %v), want (28, 40)", x, y)
	}
}

func TestTerminalField_Resize(t *testing.T) {
	tf := newTestTerminalField(t)

	tf.handleEvent(tcell.NewEventResize(80, 24))
	w, h := tf.sim.Viewport()
	if w != 640 || h != 384 {
		t.Errorf("viewport = %vx%v, want 640x384", w, h)
	}
}

func TestTerminalField_PointerCleared(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
	}{
		{"focus lost", tcell.NewEventFocus(false)},
		{"mouse outside grid", tcell.NewEventMouse(40, 5, tcell.ButtonNone, tcell.ModNone)},
		{"mouse negative", tcell.NewEventMouse(-1, 5, tcell.ButtonNone, tcell.ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf := newTestTerminalField(t)
			tf.handleEvent(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))

			tf.handleEvent(tt.ev)
			if x, y := tf.sim.Pointer(); x != field.PointerNone || y != field.PointerNone {
				t.Errorf("pointer = (%v, %v), want sentinel", x, y)
			}
		})
	}
}

func TestTerminalField_FocusGainedKeepsPointer(t *testing.T) {
	tf := newTestTerminalField(t)
	tf.handleEvent(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))

	tf.handleEvent(tcell.NewEventFocus(true))
	if x, _ := tf.sim.Pointer(); x != 28 {
		t.Errorf("pointer x = %v, want 28", x)
	}
}
