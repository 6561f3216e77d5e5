package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/cdkparity/cdkparity/internal/domain"
)

// ConsoleSink renders phase output to a terminal with lipgloss styling. A
// mutex serializes writes so concurrent examples never interleave mid-line.
type ConsoleSink struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleSink creates a ConsoleSink writing to out.
func NewConsoleSink(out io.Writer) *ConsoleSink {
	return &ConsoleSink{out: out}
}

func (s *ConsoleSink) Section(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rule := faintStyle.Render(strings.Repeat("─", 64))
	fmt.Fprintf(s.out, "\n%s\n%s\n%s\n", rule, headerStyle.Render(title), rule)
}

func (s *ConsoleSink) Event(sev domain.Severity, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch sev {
	case domain.SeveritySuccess:
		fmt.Fprintf(s.out, "  %s %s\n", passStyle.Render("✓"), msg)
	case domain.SeverityWarn:
		fmt.Fprintf(s.out, "  %s %s\n", warnStyle.Render("⚠"), warnStyle.Render(msg))
	case domain.SeverityError:
		fmt.Fprintf(s.out, "  %s %s\n", failStyle.Render("✗"), failStyle.Render(msg))
	default:
		fmt.Fprintf(s.out, "  %s\n", dimStyle.Render(msg))
	}
}

func (s *ConsoleSink) Line(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "    %s\n", text)
}

// PlainSink renders unstyled text. Used by tests and log capture.
type PlainSink struct {
	mu  sync.Mutex
	out io.Writer
}

func NewPlainSink(out io.Writer) *PlainSink {
	return &PlainSink{out: out}
}

func (s *PlainSink) Section(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "== %s ==\n", title)
}

func (s *PlainSink) Event(sev domain.Severity, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var tag string
	switch sev {
	case domain.SeveritySuccess:
		tag = "ok"
	case domain.SeverityWarn:
		tag = "warn"
	case domain.SeverityError:
		tag = "error"
	default:
		tag = "info"
	}
	fmt.Fprintf(s.out, "[%s] %s\n", tag, msg)
}

func (s *PlainSink) Line(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "    %s\n", text)
}

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	faintStyle  = lipgloss.NewStyle().Foreground(faint)
	passStyle   = lipgloss.NewStyle().Foreground(success)
	failStyle   = lipgloss.NewStyle().Foreground(danger)
	warnStyle   = lipgloss.NewStyle().Foreground(warning)
)
