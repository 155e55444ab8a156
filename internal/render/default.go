package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

type DefaultRenderer struct {
	// Out defaults to stdout
	Out io.Writer

	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
}

type decoration struct {
	X, Y    uint16
	Content string
	Frames  int // remaining frames until removed
}

func (r *DefaultRenderer) out() io.Writer {
	if nil == r.Out {
		return os.Stdout
	}
	return r.Out
}

func (r *DefaultRenderer) Init() error {
	state, err := term.MakeRaw(int(os.Stdout.Fd()))
	if nil != err {
		return err
	}
	r.restoreState = state

	fmt.Fprintf(r.out(), "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[2J",     // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Fprintf(r.out(), "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if nil == r.restoreState {
		return nil
	}
	return term.Restore(int(os.Stdout.Fd()), r.restoreState)
}

func (r *DefaultRenderer) Size() (rows, columns int) {
	columns, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return 24, 80
	}
	return rows, columns
}

func (r *DefaultRenderer) Clear() {
	r.buffer.WriteString("\033[2J")
}

func (r *DefaultRenderer) AddDecoration(col, row uint16, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Y, d.X, " ")
			continue
		}
		r.Fill(d.Y, d.X, d.Content)
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

// RenderLoop calls render once per period with the time since the previous
// frame, until render returns false.
func (r *DefaultRenderer) RenderLoop(
	period time.Duration,
	render func(now time.Time, delta time.Duration) bool,
) {
	cont := true
	last := time.Now()
	for cont {
		now := time.Now()
		delta := now.Sub(last)
		last = now
		deadline := now.Add(period)

		cont = render(now, delta)

		r.tickDecorations()
		r.flush()

		time.Sleep(time.Until(deadline))
	}
}

// at moves the cursor, rows and columns counting from 1.
func (r *DefaultRenderer) at(row, column uint16) {
	fmt.Fprintf(&r.buffer, "\033[%d;%dH", row, column)
}

func (r *DefaultRenderer) Fill(row, column uint16, message string) {
	r.at(row, column)
	r.buffer.WriteString(message)
}

// FillColor writes message in a 24-bit foreground color.
func (r *DefaultRenderer) FillColor(row, column uint16, c color.RGBA, message string) {
	r.at(row, column)
	fmt.Fprintf(&r.buffer, "\033[38;2;%d;%d;%dm%s\033[0m", c.R, c.G, c.B, message)
}

// FillBlock draws a multi-line block, such as a panel, with its top left
// corner at row, column.
func (r *DefaultRenderer) FillBlock(row, column uint16, block string) {
	for i, line := range strings.Split(block, "\n") {
		r.Fill(row+uint16(i), column, line)
	}
}

func (r *DefaultRenderer) flush() {
	io.WriteString(r.out(), r.buffer.String())
	r.buffer.Reset()
}
