package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

const bannerText = `
▄▄███▄▄· █████╗ ██╗      █████╗ ██████╗ ██╗   ██╗    ██████╗  █████╗ ▄▄███▄▄·██╗  ██╗
██╔════╝██╔══██╗██║     ██╔══██╗██╔══██╗╚██╗ ██╔╝    ██╔══██╗██╔══██╗██╔════╝██║  ██║
███████╗███████║██║     ███████║██████╔╝ ╚████╔╝     ██║  ██║███████║███████╗███████║
╚════██║██╔══██║██║     ██╔══██║██╔══██╗  ╚██╔╝      ██║  ██║██╔══██║╚════██║██╔══██║
███████║██║  ██║███████╗██║  ██║██║  ██║   ██║       ██████╔╝██║  ██║███████║██║  ██║
╚═▀▀▀══╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝       ╚═════╝ ╚═╝  ╚═╝╚═▀▀▀══╝╚═╝  ╚═╝
 Dashboard salarial (CRC)
`

// ColorizeText fades the input text between two random colors
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	endColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	chars := strings.Split(text, "")
	steps := float32(len(chars))
	half := len(chars) / 2
	if half == 0 {
		half = 1
	}

	var b strings.Builder
	for i, ch := range chars {
		b.WriteString(startColor.Fade(0, steps, float32(i%half), endColor).Sprint(ch))
	}
	return b.String()
}

// PrintBanner displays the application banner
func PrintBanner(silence bool) {
	if !silence {
		fmt.Println(ColorizeText(bannerText))
	}
}
