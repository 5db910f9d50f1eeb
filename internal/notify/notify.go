// Package notify delivers short user-facing notifications (the toast of a
// browser page, a styled line on a terminal).
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Severity controls how a notification is styled.
type Severity string

const (
	SeverityDefault     Severity = "default"
	SeveritySuccess     Severity = "success"
	SeverityDestructive Severity = "destructive"
)

// Notification is a title, description and severity triple.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

var (
	titleStyles = map[Severity]lipgloss.Style{
		SeverityDefault:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")),
		SeveritySuccess:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00D4AA")),
		SeverityDestructive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4444")),
	}

	descriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888"))

	icons = map[Severity]string{
		SeverityDefault:     "•",
		SeveritySuccess:     "✓",
		SeverityDestructive: "✗",
	}
)

// TerminalNotifier prints notifications to a writer.
type TerminalNotifier struct {
	Out io.Writer // defaults to os.Stdout
}

func (t *TerminalNotifier) Notify(n Notification) {
	out := t.Out
	if out == nil {
		out = os.Stdout
	}

	style, ok := titleStyles[n.Severity]
	if !ok {
		style = titleStyles[SeverityDefault]
	}
	icon, ok := icons[n.Severity]
	if !ok {
		icon = icons[SeverityDefault]
	}

	fmt.Fprintln(out, style.Render(icon+" "+n.Title))
	if n.Description != "" {
		fmt.Fprintln(out, descriptionStyle.Render("  "+n.Description))
	}
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return Notification{}, false
	}
	return r.sent[len(r.sent)-1], true
}
