package output

import (
	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

// PrintBanner renders the CLI startup banner.
func PrintBanner() {
	fig := figure.NewColorFigure("webaudit", "doom", "cyan", true)
	fig.Print()

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	_, _ = cyan.Println("════════════════════════════════════════════════")
	_, _ = green.Println("    single-page audit | github.com/mahim2022/websiteAuditTool")
	_, _ = cyan.Println("════════════════════════════════════════════════")
}
