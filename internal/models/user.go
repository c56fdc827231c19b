package models

import "time"

// Level is a user's self-declared proficiency with AI tools.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// UserProfile is replaced wholesale on every upsert.
type UserProfile struct {
	ID          string   `json:"id" validate:"required,max=128"`
	Name        string   `json:"name,omitempty" validate:"max=256"`
	Level       Level    `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Goals       []string `json:"goals"`
	Preferences []string `json:"preferences"`
	ToolHistory []string `json:"tool_history"`
}

// Clone deep-copies the slices.
func (p UserProfile) Clone() UserProfile {
	p.Goals = append([]string{}, p.Goals...)
	p.Preferences = append([]string{}, p.Preferences...)
	p.ToolHistory = append([]string{}, p.ToolHistory...)
	return p
}

// Prefers reports whether pref is among the user's preferences.
func (p UserProfile) Prefers(pref string) bool {
	for _, v := range p.Preferences {
		if v == pref {
			return true
		}
	}
	return false
}

// Device is a logical device a user interacts from.
type Device struct {
	ID       string `json:"id" validate:"required,max=128"`
	Kind     string `json:"kind" validate:"required,max=64"`
	Location string `json:"location,omitempty"`
	Capacity string `json:"capacity,omitempty" validate:"omitempty,oneof=low medium high"`
}

// IotEvent is a device-side signal, e.g. session start/end.
type IotEvent struct {
	DeviceID  string         `json:"device_id" validate:"required"`
	UserID    string         `json:"user_id,omitempty"`
	EventType string         `json:"event_type" validate:"required"`
	Metadata  map[string]any `json:"metadata"`
	Timestamp time.Time      `json:"timestamp"`
}
