// Package ui styles CLI status lines with lipgloss.
//
// Styles degrade to plain text when output is not a terminal, so rendered strings stay readable in pipes and tests.
package ui
