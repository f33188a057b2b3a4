package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/me/schedsim/pkg/model"
)

// WriteListing prints one line per timeline interval:
//
//	Idle from 0 to 2
//	Process 2 from 2 to 3
func WriteListing(w io.Writer, timeline []model.Interval) error {
	for _, iv := range timeline {
		var err error
		if iv.Idle() {
			_, err = fmt.Fprintf(w, "Idle from %d to %d\n", iv.Start, iv.End)
		} else {
			_, err = fmt.Fprintf(w, "Process %d from %d to %d\n", iv.PID, iv.Start, iv.End)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteGantt draws the timeline as a bar with time markers below it:
//
//	| P1 | P2 | -- |     P3     |
//	0    3    6    8            20
//
// A cell is as wide as its duration in characters, but never narrower than
// its label plus one space either side.
func WriteGantt(w io.Writer, timeline []model.Interval, opts Options) error {
	if opts.Coalesce {
		timeline = model.Coalesce(timeline)
	}
	if len(timeline) == 0 {
		_, err := fmt.Fprintln(w, "(empty timeline)")
		return err
	}
	st := newStyle(opts.Color)

	var bar, marks strings.Builder
	bar.WriteString("|")
	col := 0
	placeMark := func(t int) {
		label := strconv.Itoa(t)
		if pad := col - marks.Len(); pad > 0 {
			marks.WriteString(strings.Repeat(" ", pad))
		} else if marks.Len() > 0 {
			marks.WriteString(" ")
		}
		marks.WriteString(label)
	}

	for _, iv := range timeline {
		placeMark(iv.Start)

		label := "--"
		if !iv.Idle() {
			label = "P" + strconv.Itoa(iv.PID)
		}
		width := max(len(label)+2, iv.Duration())
		left := (width - len(label)) / 2
		right := width - len(label) - left

		bar.WriteString(strings.Repeat(" ", left))
		bar.WriteString(st.pid(iv.PID, label))
		bar.WriteString(strings.Repeat(" ", right))
		bar.WriteString("|")
		col += width + 1
	}
	placeMark(timeline[len(timeline)-1].End)

	_, err := fmt.Fprintf(w, "%s\n%s\n", bar.String(), marks.String())
	return err
}
