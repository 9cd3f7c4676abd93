// Package log provides the context-aware, severity-colored console output
// of the doctor.
package log

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/spacialist/plugin-doctor/internal/ui/styles"
)

// Width of section separators.
const (
	lineLength = 75
	spaceCount = 4
)

type ctxKey struct{}

// Logger writes one line per message on one of the severity channels.
type Logger struct {
	out     io.Writer
	verbose bool
}

// New creates a new logger.
func New(out io.Writer, verbose bool) *Logger {
	return &Logger{out: out, verbose: verbose}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output without styling.
func (l *Logger) Printf(format string, args ...any) {
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output without styling.
func (l *Logger) Println(args ...any) {
	fmt.Fprintln(l.out, args...)
}

// Logf prints on the log channel.
func (l *Logger) Logf(format string, args ...any) {
	l.emit(styles.LogStyle, fmt.Sprintf(format, args...))
}

// Successf prints a checkmarked line on the success channel.
func (l *Logger) Successf(format string, args ...any) {
	l.emit(styles.SuccessStyle, styles.CurrentSymbols().Success+"   "+fmt.Sprintf(format, args...))
}

// Warnf prints on the warning channel.
func (l *Logger) Warnf(format string, args ...any) {
	l.emit(styles.WarningStyle, fmt.Sprintf(format, args...))
}

// Stalef reports something that already exists and was left alone.
func (l *Logger) Stalef(format string, args ...any) {
	l.Warnf("%s   %s", styles.CurrentSymbols().Stale, fmt.Sprintf(format, args...))
}

// Hintf prints a hint on the log channel.
func (l *Logger) Hintf(format string, args ...any) {
	l.Logf("%s Hint:   %s", styles.CurrentSymbols().Hint, fmt.Sprintf(format, args...))
}

// Errorf prints on the error channel.
func (l *Logger) Errorf(format string, args ...any) {
	l.emit(styles.ErrorStyle, fmt.Sprintf(format, args...))
}

// SystemErrorf reports an execution error that prevented a check from
// completing.
func (l *Logger) SystemErrorf(format string, args ...any) {
	l.Errorf("%s   Execution error: %s", styles.CurrentSymbols().SystemError, fmt.Sprintf(format, args...))
}

// Section prints a separator carrying the section title.
func (l *Logger) Section(title string) {
	l.Logf("%s", Separator(title))
}

// Debug logs a message with key-value pairs.
// Only prints when verbose mode is enabled. A trailing key without a
// value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.verbose {
		return
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	l.emit(styles.LogStyle, b.String())
}

// IsVerbose returns true if verbose mode is enabled.
func (l *Logger) IsVerbose() bool {
	return l.verbose
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}

// emit renders every line on its own so multi-line messages are not
// padded to a common width.
func (l *Logger) emit(style lipgloss.Style, msg string) {
	lines := strings.Split(msg, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	fmt.Fprintln(l.out, strings.Join(lines, "\n"))
}

// Separator returns a lineLength wide row of "=" with text centred in it.
// Empty text yields a plain separator.
func Separator(text string) string {
	infill := ""
	if text != "" {
		pad := strings.Repeat(" ", spaceCount)
		infill = pad + text + pad
	}
	symbols := max(lineLength-lipgloss.Width(infill), 0)
	left := int(math.Ceil(float64(symbols) / 2))
	right := symbols / 2
	return strings.Repeat("=", left) + infill + strings.Repeat("=", right)
}
