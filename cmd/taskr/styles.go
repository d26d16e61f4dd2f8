// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all CLI output.
const (
	// ColorPrimary is purple - used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for annotations and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for the task listing header and step announcements.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for errors and empty listings.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorTask is cyan - used for task names.
	ColorTask = lipgloss.Color("#06B6D4")

	// ColorHighlight is blue - used for keys and commands.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ErrorStyle is for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for command names, config keys and code.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// ValueStyle is for config values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// Task listing and announcement styles.
	listHeaderStyle  = lipgloss.NewStyle().Foreground(ColorSuccess)
	listEmptyStyle   = lipgloss.NewStyle().Foreground(ColorError)
	listSourceStyle  = lipgloss.NewStyle().Italic(true).Foreground(ColorMuted)
	announceTagStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	taskNameStyle    = lipgloss.NewStyle().Foreground(ColorTask)
)
