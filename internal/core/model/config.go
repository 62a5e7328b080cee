package model

import "time"

// SessionConfig contains startup settings for the session controller.
type SessionConfig struct {
	// WorkInput and BreakInput are the minute counts shown in the input
	// fields before the user edits them.
	WorkInput  string
	BreakInput string

	// TickInterval is the delay between ticks. Zero means one second.
	TickInterval time.Duration
}
