package linkguard

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	destinationStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#00D4AA"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// TerminalConfirmer asks on a terminal. When In is a file that is not a
// terminal (piped input, CI) it declines without reading.
type TerminalConfirmer struct {
	In  io.Reader // defaults to os.Stdin
	Out io.Writer // defaults to os.Stdout
}

// Confirm prints the message and the destination and waits for y/yes.
func (c *TerminalConfirmer) Confirm(req ConfirmationRequest) bool {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false
	}

	fmt.Fprintln(out, promptStyle.Render(req.Message))
	fmt.Fprintln(out, hintStyle.Render("  Destination: ")+destinationStyle.Render(req.URL))
	fmt.Fprint(out, "[y/N]: ")

	reader := bufio.NewReader(in)
	response, _ := reader.ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
