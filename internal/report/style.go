package report

import (
	"fmt"

	"github.com/fatih/color"
)

// style holds the colors of one render. Colors are per instance so that a
// render with Color off never depends on the global color.NoColor setting.
type style struct {
	title   *color.Color
	dim     *color.Color
	palette []*color.Color
}

func newStyle(enabled bool) *style {
	s := &style{
		title: color.New(color.Bold, color.FgCyan),
		dim:   color.New(color.Faint),
		palette: []*color.Color{
			color.New(color.Bold, color.FgMagenta),
			color.New(color.Bold, color.FgCyan),
			color.New(color.Bold, color.FgYellow),
			color.New(color.Bold, color.FgGreen),
			color.New(color.Bold, color.FgHiBlue),
			color.New(color.Bold, color.FgHiRed),
		},
	}
	for _, c := range s.all() {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s *style) all() []*color.Color {
	return append([]*color.Color{s.title, s.dim}, s.palette...)
}

// pid colors a process label; idle time is dimmed.
func (s *style) pid(pid int, text string) string {
	if pid < 0 {
		return s.dim.Sprint(text)
	}
	return s.palette[pid%len(s.palette)].Sprint(text)
}

func (s *style) heading(format string, args ...any) string {
	return s.title.Sprint(fmt.Sprintf(format, args...))
}
