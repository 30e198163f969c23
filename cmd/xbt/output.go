package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/conn-castle/xiaobait9-tools/internal/messages"
)

func printSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, messages.TitleLineFmt, color.GreenString(messages.TitleSuccess), msg)
}

func printInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, messages.TitleLineFmt, color.CyanString(messages.TitleInfo), msg)
}
