package banner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"Dev Server", 10},
		{"開発サーバー", 12},
		{"ｶﾀｶﾅ", 4},
		{"═║", 2},
	}
	for _, tt := range tests {
		if got := DisplayWidth(tt.in); got != tt.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBoxAlignment(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		body      []string
		wantWidth int
	}{
		{"default width", "Dev Server", []string{"a", "", "b"}, innerWidth + 2},
		{"wide characters", "開発サーバー", []string{"ポート 8000"}, innerWidth + 2},
		{"long line widens box", "t", []string{strings.Repeat("x", 70)}, 70 + 2 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Box(tt.title, tt.body)
			if len(lines) != len(tt.body)+4 {
				t.Fatalf("Box() returned %d lines, want %d", len(lines), len(tt.body)+4)
			}
			for i, l := range lines {
				if got := DisplayWidth(l); got != tt.wantWidth {
					t.Errorf("line %d %q width = %d, want %d", i, l, got, tt.wantWidth)
				}
			}
		})
	}
}

func TestStartup(t *testing.T) {
	lines := Startup("FitFun Dev Server", 8000)

	if !strings.Contains(lines[1], "FitFun Dev Server") {
		t.Errorf("title row = %q, want it to contain the title", lines[1])
	}
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"http://localhost:8000", "Press Ctrl+C to stop the server"} {
		if !strings.Contains(joined, want) {
			t.Errorf("banner missing %q:\n%s", want, joined)
		}
	}
}

func TestPrint(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	Print(&buf, []string{"top", "title", "bottom"})

	if got, want := buf.String(), "\ntop\ntitle\nbottom\n\n"; got != want {
		t.Errorf("Print() wrote %q, want %q", got, want)
	}
}

func TestStopped(t *testing.T) {
	var buf bytes.Buffer
	Stopped(&buf)

	if got, want := buf.String(), "\n\nServer stopped.\n"; got != want {
		t.Errorf("Stopped() wrote %q, want %q", got, want)
	}
}
