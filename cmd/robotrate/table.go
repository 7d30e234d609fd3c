package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/warp/shift-rates/generic"
	"github.com/warp/shift-rates/robot"
)

// bandColors is indexed like robot.Bands.
var bandColors = []*color.Color{
	color.New(color.FgBlue),
	color.New(color.FgCyan),
	color.New(color.FgYellow),
	color.New(color.FgRed),
}

var (
	restColor  = color.New(color.FgHiBlack)
	totalColor = color.New(color.Bold)
)

func labelColor(l generic.Label) (*color.Color, string) {
	if b, ok := robot.BandOf(l); ok {
		return bandColors[b], b.String()
	}
	return restColor, "rest"
}

// renderBreakdown prints every segment, then the per-band totals.
func renderBreakdown(w io.Writer, q *robot.Quote, s robot.Schedule) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("shift %s\n\n", q.Shift))
	for _, seg := range q.Segments {
		c, name := labelColor(seg.Label)
		sb.WriteString(fmt.Sprintf("%s  %s  %s %6d min\n",
			generic.FormatNaive(seg.Start),
			generic.FormatNaive(seg.End),
			c.Sprintf("%-15s", name),
			int64(seg.Duration()/time.Minute)))
	}

	sb.WriteString("\n")
	for _, b := range robot.Bands {
		minutes := q.Minutes(b)
		rate := s.Rates[b].Value
		sb.WriteString(fmt.Sprintf("%s %6d min x %-4s = %s\n",
			bandColors[b].Sprintf("%-15s", b),
			minutes,
			rate,
			q.Breakdown.Minutes(int(b)).Mul(rate, generic.UnitCredits).Value))
	}
	sb.WriteString(fmt.Sprintf("%s %6d min\n", restColor.Sprintf("%-15s", "rest"), q.RestMinutes()))
	sb.WriteString(totalColor.Sprintf("%-15s %s\n", "total", q.Owed.Value))

	fmt.Fprint(w, sb.String())
}
