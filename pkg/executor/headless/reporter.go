package headless

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/entrhq/hud/pkg/overlay"
)

// LogLevel represents the console verbosity level
type LogLevel int

const (
	// LogLevelQuiet shows only errors and the final summary
	LogLevelQuiet LogLevel = iota
	// LogLevelNormal shows one line per step (default)
	LogLevelNormal
	// LogLevelVerbose also shows every routed notification
	LogLevelVerbose
	// LogLevelDebug shows all internal details
	LogLevelDebug
)

var verbosityLevels = map[string]LogLevel{
	"quiet":   LogLevelQuiet,
	"normal":  LogLevelNormal,
	"verbose": LogLevelVerbose,
	"debug":   LogLevelDebug,
}

const (
	colorReset     = "\033[0m"
	colorCyan      = "\033[36m"
	colorSalmon    = "\033[38;5;217m" // #FFB3BA
	colorGray      = "\033[90m"
	colorBoldGreen = "\033[1;32m"
	colorBoldRed   = "\033[1;31m"
	colorBoldWhite = "\033[1;37m"
)

// Reporter prints script progress to the console.
type Reporter struct {
	level  LogLevel
	writer io.Writer
	color  bool

	startTime time.Time
	stepCount int
}

// NewReporter creates a reporter for the named verbosity, writing to w
// (stdout when nil). Colours are used only for stdout.
func NewReporter(verbosity string, w io.Writer) *Reporter {
	level, ok := verbosityLevels[verbosity]
	if !ok {
		level = LogLevelNormal
	}
	color := false
	if w == nil {
		w = os.Stdout
		color = true
	}
	return &Reporter{level: level, writer: w, color: color, startTime: time.Now()}
}

func (r *Reporter) paint(color, s string) string {
	if !r.color {
		return s
	}
	return color + s + colorReset
}

// Header prints a prominent header message
func (r *Reporter) Header(message string) {
	if r.level >= LogLevelNormal {
		rule := strings.Repeat("=", 60)
		fmt.Fprintf(r.writer, "%s\n%s\n%s\n", r.paint(colorBoldWhite, rule), r.paint(colorBoldWhite, "  "+message), r.paint(colorBoldWhite, rule))
	}
}

// Step prints a numbered step
func (r *Reporter) Step(message string) {
	if r.level >= LogLevelNormal {
		r.stepCount++
		fmt.Fprintln(r.writer, r.paint(colorCyan, fmt.Sprintf("[%d] %s", r.stepCount, message)))
	}
}

// Successf prints a success message with checkmark
func (r *Reporter) Successf(format string, args ...interface{}) {
	if r.level >= LogLevelNormal {
		fmt.Fprintln(r.writer, r.paint(colorBoldGreen, "✓ "+fmt.Sprintf(format, args...)))
	}
}

// Errorf prints an error message
func (r *Reporter) Errorf(format string, args ...interface{}) {
	fmt.Fprintln(r.writer, r.paint(colorBoldRed, "✗ Error: "+fmt.Sprintf(format, args...)))
}

// Verbosef prints detailed information (only in verbose mode)
func (r *Reporter) Verbosef(format string, args ...interface{}) {
	if r.level >= LogLevelVerbose {
		fmt.Fprintln(r.writer, r.paint(colorGray, "→ "+fmt.Sprintf(format, args...)))
	}
}

// Debugf prints debug information (only in debug mode)
func (r *Reporter) Debugf(format string, args ...interface{}) {
	if r.level >= LogLevelDebug {
		fmt.Fprintln(r.writer, r.paint(colorGray, "[DEBUG] "+fmt.Sprintf(format, args...)))
	}
}

// Summary prints the outcome and the final state of the collection.
func (r *Reporter) Summary(err error, collection *overlay.Collection) {
	counts := collection.Counts()

	fmt.Fprintln(r.writer, r.paint(colorBoldWhite, strings.Repeat("=", 60)))
	if err != nil {
		fmt.Fprintf(r.writer, "  Status: %s\n", r.paint(colorBoldRed, "✗ FAILED"))
		fmt.Fprintf(r.writer, "  Error: %v\n", err)
	} else {
		fmt.Fprintf(r.writer, "  Status: %s\n", r.paint(colorBoldGreen, "✓ SUCCESS"))
	}
	fmt.Fprintf(r.writer, "  Duration: %s\n", time.Since(r.startTime).Round(time.Millisecond))
	fmt.Fprintf(r.writer, "  Overlays: live %d · spawning %d · closing %d\n", counts.Live, counts.Spawning, counts.Closing)
	for _, ov := range collection.Items() {
		fmt.Fprintf(r.writer, "    %s\n", r.paint(colorSalmon, ov.String()))
	}
}
