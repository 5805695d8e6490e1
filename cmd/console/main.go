package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/wizard-village/internal/app"
	"github.com/jwebster45206/wizard-village/internal/termhost"
)

func main() {
	a, err := app.Start(termhost.Measurer{}, app.Deps{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(termhost.NewModel(a.Village), tea.WithAltScreen())
	_, err = p.Run()
	a.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
