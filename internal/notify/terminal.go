package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// TerminalNotifier renders notifications to a terminal writer
type TerminalNotifier struct {
	out io.Writer

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
}

// NewTerminalNotifier creates a notifier writing to stderr, keeping
// notifications out of pipeable command output.
func NewTerminalNotifier() *TerminalNotifier {
	return NewTerminalNotifierTo(os.Stderr)
}

// NewTerminalNotifierTo creates a notifier writing to the given writer
func NewTerminalNotifierTo(out io.Writer) *TerminalNotifier {
	return &TerminalNotifier{
		out:          out,
		successStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		infoStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	}
}

// Success renders a success message
func (n *TerminalNotifier) Success(message string) {
	fmt.Fprintln(n.out, n.successStyle.Render("✓ ")+message)
}

// Error renders an error message
func (n *TerminalNotifier) Error(message string) {
	fmt.Fprintln(n.out, n.errorStyle.Render("✗ ")+message)
}

// Info renders an informational message
func (n *TerminalNotifier) Info(message string) {
	fmt.Fprintln(n.out, n.infoStyle.Render("• ")+message)
}
