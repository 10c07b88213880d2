package main

import (
	"fmt"
	"strings"

	"github.com/mazznoer/colorgrad"
)

// getBanner returns a colorized ASCII art banner
func getBanner() string {
	banner := `
     _                 _               _
  __| |  __ _    ___  | |__     __ _  | |_
 / _' | / _' |  / __| | '_ \   / _' | | __|
| (_| || (_| | | (__  | | | | | (_| | | |_
 \__,_| \__,_|  \___| |_| |_|  \__,_|  \__|
 .  .  .  a  chat  with  hands  [v` + version + `]
`
	grad, _ := colorgrad.NewGradient().
		HtmlColors("#f05111ff", "#fdfdfdff").
		Build()

	lines := strings.Split(banner, "\n")

	// Find max line length for gradient spread
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	colors := grad.Colors(uint(maxLen))
	var coloredBanner strings.Builder

	for _, line := range lines {
		for i, ch := range line {
			r, g, b, _ := colors[i].RGBA255()
			coloredBanner.WriteString(fmt.Sprintf("\x1b[38;2;%d;%d;%dm%c", r, g, b, ch))
		}
		coloredBanner.WriteString("\x1b[0m\n")
	}

	return coloredBanner.String()
}
