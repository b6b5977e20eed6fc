package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	// Skipped packages, already installed as regular dependencies
	SkippedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5C07B")).
			Italic(true)

	// Package locations and written files
	PathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))

	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)
