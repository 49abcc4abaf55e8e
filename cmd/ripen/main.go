package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aprzn123/RiPeN/calc"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("ripen", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configDir := fs.String("config", calc.DefaultConfigDir(), "directory holding the startup scripts")
	debug := fs.Bool("debug", false, "write a debug log to ripen.log")
	if err := fs.Parse(args[1:]); err != nil {
		printUsage()
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *debug {
		f, err := tea.LogToFile("ripen.log", "ripen")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		// Writing to a terminal the TUI owns would garble it.
		log.SetOutput(io.Discard)
	}

	reg := calc.NewRegistry()
	defer reg.Close()

	var startup []string
	for _, err := range reg.LoadScripts(*configDir) {
		log.Printf("startup: %v", err)
		startup = append(startup, err.Error())
	}

	p := tea.NewProgram(newModel(calc.New(reg), startup), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", prog)
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -config <dir>")
	fmt.Fprintln(os.Stderr, "    directory holding the startup scripts init.lua and init.ua")
	fmt.Fprintln(os.Stderr, "    (default: the ripen directory under the user config directory)")
	fmt.Fprintln(os.Stderr, "  -debug")
	fmt.Fprintln(os.Stderr, "    write a debug log to ripen.log")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
