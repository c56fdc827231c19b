package models

import "time"

// Event types the analytics engine gives meaning to. Any other type is stored as-is.
const (
	EventMentorResponse    = "mentor_response"
	EventVisionEnvironment = "vision_environment"
	EventUsageSummary      = "usage_summary"
	EventStudyPlan         = "study_plan"
	EventTextRefinement    = "text_refinement"
)

// UsageEvent is one recorded interaction. ID and Timestamp are assigned by the store.
type UsageEvent struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	EventType         string         `json:"event_type"`
	Category          string         `json:"category,omitempty"`
	RecommendedToolID string         `json:"recommended_tool_id,omitempty"`
	Success           *bool          `json:"success,omitempty"`
	DurationSec       *int           `json:"duration_sec,omitempty"`
	Context           map[string]any `json:"context"`
	Payload           map[string]any `json:"payload"`
	Timestamp         time.Time      `json:"timestamp"`
}

// Clone copies the event so callers cannot alter stored state through shared maps or pointers.
func (e UsageEvent) Clone() UsageEvent {
	e.Context = cloneMap(e.Context)
	e.Payload = cloneMap(e.Payload)
	if e.Success != nil {
		v := *e.Success
		e.Success = &v
	}
	if e.DurationSec != nil {
		v := *e.DurationSec
		e.DurationSec = &v
	}
	return e
}

// ToolID is the recommended tool, taken from the event or, failing that, its payload.
func (e UsageEvent) ToolID() string {
	if e.RecommendedToolID != "" {
		return e.RecommendedToolID
	}
	return payloadString(e.Payload, "recommended_tool_id", "recommended_tool", "ia_indicada")
}

// CategoryName is the event category, taken from the event or, failing that, its payload.
func (e UsageEvent) CategoryName() string {
	if e.Category != "" {
		return e.Category
	}
	return payloadString(e.Payload, "category", "categoria")
}

// EventIngestRequest is the POST /events payload.
type EventIngestRequest struct {
	UserID            string         `json:"user_id" validate:"required,max=128"`
	EventType         string         `json:"event_type" validate:"required,max=64"`
	Category          string         `json:"category,omitempty" validate:"max=64"`
	RecommendedToolID string         `json:"recommended_tool_id,omitempty" validate:"max=64"`
	Success           *bool          `json:"success,omitempty"`
	DurationSec       *int           `json:"duration_sec,omitempty" validate:"omitempty,min=0"`
	Context           map[string]any `json:"context,omitempty"`
	Payload           map[string]any `json:"payload,omitempty"`
}

// Event converts the request into an unstamped UsageEvent.
func (r EventIngestRequest) Event() UsageEvent {
	return UsageEvent{
		UserID:            r.UserID,
		EventType:         r.EventType,
		Category:          r.Category,
		RecommendedToolID: r.RecommendedToolID,
		Success:           r.Success,
		DurationSec:       r.DurationSec,
		Context:           r.Context,
		Payload:           r.Payload,
	}
}

// EventIngestResponse is returned by POST /events.
type EventIngestResponse struct {
	Status  string `json:"status"`
	EventID string `json:"event_id"`
}

func payloadString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
