package logger

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	tagInfo    = color.New(color.FgCyan, color.Bold)
	tagSuccess = color.New(color.FgGreen, color.Bold)
	tagWarn    = color.New(color.FgYellow, color.Bold)
	tagError   = color.New(color.FgRed, color.Bold)
	dim        = color.New(color.Faint)
)

// Info prints a tagged informational line.
func Info(tag, msg string) {
	fmt.Printf("%s %s\n", tagInfo.Sprintf("[%s]", tag), msg)
}

// Success prints a tagged success line.
func Success(tag, msg string) {
	fmt.Printf("%s %s\n", tagSuccess.Sprintf("[%s]", tag), msg)
}

// Warn prints a tagged warning line.
func Warn(tag, msg string) {
	fmt.Printf("%s %s\n", tagWarn.Sprintf("[%s]", tag), msg)
}

// Error prints a tagged error line.
func Error(tag, msg string) {
	fmt.Printf("%s %s\n", tagError.Sprintf("[%s]", tag), msg)
}

// Section prints a visual separator with a title.
func Section(title string) {
	fmt.Println()
	fmt.Println(tagInfo.Sprint("── " + title + " " + dashes(40-len(title))))
}

// Stats prints an aligned key/value line.
func Stats(key string, value interface{}) {
	fmt.Printf("  %s %v\n", dim.Sprintf("%-24s", key+":"), value)
}

// Server prints the address the client talks to.
func Server(addr string) {
	Info("API", "Server "+addr)
}

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Println(tagInfo.Sprint(`  ___ __   __ ___   ___  ___  _   _ _____ ___  ___`))
	fmt.Println(tagInfo.Sprint(` | __|\ \ / /| __| | _ \/ _ \| | | |_   _| __|/ __|`))
	fmt.Println(tagInfo.Sprint(` | _|  \ V / | _|  |   / (_) | |_| | | | | _| \__ \`))
	fmt.Println(tagInfo.Sprint(` |___|  \_/  |___| |_|_\\___/ \___/  |_| |___||___/`))
	fmt.Printf("%s\n\n", dim.Sprint("  trade route scout "+version))
}

func dashes(n int) string {
	if n < 4 {
		n = 4
	}
	s := make([]byte, n)
	for i := range s {
		s[i] = '-'
	}
	return string(s)
}
