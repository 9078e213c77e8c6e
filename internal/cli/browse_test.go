package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/paragon/pkg/stitch"
)

func press(t *testing.T, m LayoutBrowserModel, keys ...string) LayoutBrowserModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(LayoutBrowserModel)
	}
	return m
}

func testLayouts() []stitch.Layout {
	return []stitch.Layout{
		{"AB", "CD", "=="},
		{"EF", "GH", "==", "IJ", "KL", "=="},
		{"MN", "OP", "=="},
	}
}

func TestLayoutBrowserNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"start", nil, 0},
		{"next", []string{"right"}, 1},
		{"next past end", []string{"right", "right", "right", "right"}, 2},
		{"prev at start", []string{"left"}, 0},
		{"vim keys", []string{"l", "l", "h"}, 1},
		{"last", []string{"G"}, 2},
		{"first", []string{"G", "g"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(t, NewLayoutBrowserModel(testLayouts()), tt.keys...)
			if m.Index != tt.want {
				t.Errorf("Index = %d, want %d", m.Index, tt.want)
			}
		})
	}
}

func TestLayoutBrowserScroll(t *testing.T) {
	m := NewLayoutBrowserModel(testLayouts())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	m = next.(LayoutBrowserModel)
	if m.Height != 5 {
		t.Fatalf("Height = %d, want 5", m.Height)
	}

	m = press(t, m, "right", "down", "down", "down")
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1 (six lines, five visible)", m.Offset)
	}

	m = press(t, m, "up", "up")
	if m.Offset != 0 {
		t.Errorf("Offset = %d, want 0", m.Offset)
	}

	m = press(t, m, "down", "right")
	if m.Offset != 0 {
		t.Error("changing layout should reset scrolling")
	}
}

func TestLayoutBrowserQuit(t *testing.T) {
	m := NewLayoutBrowserModel(testLayouts())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestLayoutBrowserView(t *testing.T) {
	m := press(t, NewLayoutBrowserModel(testLayouts()), "right")
	view := m.View()

	for _, want := range []string{"Layout 2/3", "EF", "KL", "lines 1-6 of 6"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}
