package cli

import "github.com/fatih/color"

var (
	defaultColor = color.New()
	dirColor     = color.New(color.FgCyan)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgHiRed)
)
