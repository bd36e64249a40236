package core

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

const bannerWidth = 50

var bannerColor = color.New(color.FgCyan, color.Bold)

// Banner writes the greeting shown when an interactive session starts.
func Banner(w io.Writer, now time.Time) {
	border := strings.Repeat("*", bannerWidth)

	bannerColor.Fprintln(w, border)
	bannerLine(w, "Welcome to SeaShell")
	bannerLine(w, "")
	bannerLine(w, fmt.Sprintf("Date: %s", now.Format("01/02/2006")))
	bannerLine(w, fmt.Sprintf("Time: %s", now.Format("15:04:05")))
	bannerColor.Fprintln(w, border)
	fmt.Fprintln(w)
}

// bannerLine centers text inside the starred border.
func bannerLine(w io.Writer, text string) {
	inner := bannerWidth - 2
	pad := inner - len(text)
	left := pad / 2
	right := pad - left

	fmt.Fprintf(w, "*%s%s%s*\n", strings.Repeat(" ", left), text, strings.Repeat(" ", right))
}
