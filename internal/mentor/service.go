// Package mentor builds prompts from user input plus catalog and analytics context,
// delegates them to the generation service, checks the shape of what comes back
// and records one usage event per call.
package mentor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PratikDhanave/ai-eco-analytics/internal/analytics"
	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
	"github.com/PratikDhanave/ai-eco-analytics/internal/catalog"
	"github.com/PratikDhanave/ai-eco-analytics/internal/genai"
	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
	"github.com/PratikDhanave/ai-eco-analytics/internal/store"
)

// AnonymousUser is recorded when a caller does not identify the user.
const AnonymousUser = "anon"

// Recorder is the write side of the event store.
type Recorder interface {
	Record(ctx context.Context, evt models.UsageEvent) store.Result
}

// Config tunes the orchestrators.
type Config struct {
	// Language the generated content must be written in.
	Language string
	// VisionModel overrides the generator's default model for image analysis.
	VisionModel string
}

// Service runs the mentor and vision flows.
type Service struct {
	gen       genai.Generator
	catalog   *catalog.Catalog
	analytics *analytics.Engine
	events    Recorder
	cfg       Config
	now       func() time.Time
}

func NewService(gen genai.Generator, cat *catalog.Catalog, eng *analytics.Engine, events Recorder, cfg Config) *Service {
	if cfg.Language == "" {
		cfg.Language = "pt-BR"
	}
	return &Service{gen: gen, catalog: cat, analytics: eng, events: events, cfg: cfg, now: time.Now}
}

// TaskPlan is the mentor's answer for one task.
type TaskPlan struct {
	RecommendedTool  string   `json:"recommended_tool"`
	WhenToUse        string   `json:"when_to_use"`
	WhenToAvoid      string   `json:"when_to_avoid"`
	HumanSteps       []string `json:"human_steps"`
	AISteps          []string `json:"ai_steps"`
	Difficulty       string   `json:"difficulty"`
	EstimatedMinutes int      `json:"estimated_minutes"`
	Category         string   `json:"category"`
}

// ExplainTask asks the mentor how to approach a task. A recommended tool the catalog
// does not know is replaced by the catalog's pick for the task category.
func (s *Service) ExplainTask(ctx context.Context, userID, description, extra string) (TaskPlan, error) {
	start := s.now()
	category := Categorize(description)
	fallback, _ := s.catalog.ForCategory(category)

	plan, err := s.explainTask(ctx, description, extra)
	if err == nil {
		if !s.catalog.GetOrDefault(plan.RecommendedTool).Known {
			plan.RecommendedTool = fallback.ID
		}
		plan.Category = category
	}

	evt := models.UsageEvent{UserID: userID, EventType: models.EventMentorResponse, Category: category}
	if err == nil {
		evt.RecommendedToolID = plan.RecommendedTool
		evt.Payload = toPayload(plan)
	}
	s.record(ctx, evt, start, err)

	return plan, err
}

func (s *Service) explainTask(ctx context.Context, description, extra string) (TaskPlan, error) {
	if extra == "" {
		extra = "N/A"
	}
	prompt := fmt.Sprintf(`You are a digital productivity mentor for AI tools.

Return ONLY a JSON object with this shape:
{
  "recommended_tool": "%s",
  "when_to_use": "...",
  "when_to_avoid": "...",
  "human_steps": ["...", "..."],
  "ai_steps": ["...", "..."],
  "difficulty": "low|medium|high",
  "estimated_minutes": 30
}

Rules:
- Write in %s.
- Nothing outside the JSON.
- User task: %s
- Context: %s
- Short video tasks (TikTok/Reels) favour "capcut".
- Text or blog tasks default to "chatgpt".
- Image or design tasks use "stable_diffusion".`,
		strings.Join(s.toolIDs(), "|"), s.cfg.Language, description, extra)

	obj, err := s.generateObject(ctx, genai.Request{Prompt: prompt, ExpectJSON: true})
	if err != nil {
		return TaskPlan{}, err
	}

	var plan TaskPlan
	if err := remarshal(obj, &plan); err != nil {
		return TaskPlan{}, apperrors.BadUpstreamResponse("mentor answer has the wrong shape: %v", err)
	}
	if plan.HumanSteps == nil {
		plan.HumanSteps = []string{}
	}
	if plan.AISteps == nil {
		plan.AISteps = []string{}
	}
	switch plan.Difficulty {
	case "low", "medium", "high":
	default:
		plan.Difficulty = "medium"
	}
	return plan, nil
}

// UsageSummary writes a short coaching text from global and per-user usage.
func (s *Service) UsageSummary(ctx context.Context, userID string) (string, error) {
	start := s.now()
	userID = orAnonymous(userID)

	top, _ := json.MarshalIndent(s.analytics.TopTools(ctx, 5), "", "  ")
	mine, _ := json.MarshalIndent(s.analytics.UserEco(ctx, userID), "", "  ")

	prompt := fmt.Sprintf(`You are a coach for productive and sustainable AI use.

AI usage across all users:
%s

AI usage of user %s:
%s

Write 2 to 3 paragraphs in %s explaining:
- which kinds of AI this user relies on more or less;
- how their estimated energy footprint looks, qualitatively only (low, medium, high);
- 3 practical recommendations to use AI more efficiently and sustainably.
Keep the tone encouraging and plain.`, top, userID, mine, s.cfg.Language)

	text, err := s.gen.Generate(ctx, genai.Request{Prompt: prompt})
	text = strings.TrimSpace(text)
	s.record(ctx, models.UsageEvent{UserID: userID, EventType: models.EventUsageSummary}, start, err)
	if err != nil {
		return "", err
	}
	return text, nil
}

// StudyPlan generates a week-by-week learning plan.
func (s *Service) StudyPlan(ctx context.Context, userID, goal string, hoursPerWeek int) (map[string]any, error) {
	start := s.now()
	prompt := fmt.Sprintf(`You are a career development mentor focused on AI and the future of work.

Return ONLY a JSON object with this shape:
{
  "goal": "...",
  "duration_weeks": 4,
  "weeks": [
    {"week": 1, "focus": "...", "topics": ["...", "..."], "tasks": ["...", "..."]}
  ]
}

Rules:
- Write in %s.
- Nothing outside the JSON.
- Fit the plan to the goal: "%s".
- The user has about %d hours per week.
- Use between 3 and 6 weeks depending on the workload.`, s.cfg.Language, goal, hoursPerWeek)

	obj, err := s.generateObject(ctx, genai.Request{Prompt: prompt, ExpectJSON: true})
	s.record(ctx, models.UsageEvent{
		UserID:    userID,
		EventType: models.EventStudyPlan,
		Context:   map[string]any{"hours_per_week": hoursPerWeek},
	}, start, err)
	return obj, err
}

// RefineText rewrites a draft for a content kind, tone and size, explaining the changes.
func (s *Service) RefineText(ctx context.Context, userID, kind, draft, tone, size string) (map[string]any, error) {
	start := s.now()
	prompt := fmt.Sprintf(`You are a writing and communication assistant.

Content kind: %s
Desired tone: %s
Desired size: %s

Draft:
"""%s"""

Rewrite the draft keeping its main idea but adjusting kind, tone and size, then briefly
explain what was improved.

Return ONLY a JSON object:
{
  "refined_text": "...",
  "improvements": "..."
}

Write in %s.`, kind, tone, size, draft, s.cfg.Language)

	obj, err := s.generateObject(ctx, genai.Request{Prompt: prompt, ExpectJSON: true})
	s.record(ctx, models.UsageEvent{
		UserID:    userID,
		EventType: models.EventTextRefinement,
		Context:   map[string]any{"kind": kind, "tone": tone, "size": size},
	}, start, err)
	return obj, err
}

// AnalyzeWorkspace produces an ergonomics report from a photo of a desk or study space.
func (s *Service) AnalyzeWorkspace(ctx context.Context, userID string, img genai.Image) (map[string]any, error) {
	start := s.now()
	prompt := fmt.Sprintf(`You are an expert in ergonomics, productivity and wellbeing at work.

From the attached image, return ONLY a JSON object:
{
  "overall": "great | good | fair | poor",
  "ergonomics": {"likely_posture": "...", "screen_height": "...", "chair_height": "...", "risks": ["..."]},
  "lighting": {"level": "good | medium | low", "sources": ["..."], "problems": ["..."]},
  "organization": {"level": "organized | moderate | messy", "desk_items": ["..."], "distractions": ["..."]},
  "recommendations": ["..."]
}

Nothing outside the JSON. Write in %s.`, s.cfg.Language)

	obj, err := s.generateObject(ctx, genai.Request{
		Prompt:     prompt,
		ExpectJSON: true,
		Image:      &img,
		Model:      s.cfg.VisionModel,
	})
	s.record(ctx, models.UsageEvent{
		UserID:    userID,
		EventType: models.EventVisionEnvironment,
		Context:   map[string]any{"mime_type": img.MIMEType, "bytes": len(img.Data)},
	}, start, err)
	return obj, err
}

func (s *Service) generateObject(ctx context.Context, req genai.Request) (map[string]any, error) {
	text, err := s.gen.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return genai.DecodeObject(text)
}

// record stores one event per generation call. Failed calls are kept with success=false.
func (s *Service) record(ctx context.Context, evt models.UsageEvent, start time.Time, callErr error) {
	evt.UserID = orAnonymous(evt.UserID)
	ok := callErr == nil
	evt.Success = &ok
	dur := int(s.now().Sub(start).Seconds())
	evt.DurationSec = &dur

	if callErr != nil {
		if evt.Payload == nil {
			evt.Payload = map[string]any{}
		}
		var ae *apperrors.AppError
		if errors.As(callErr, &ae) {
			evt.Payload["error_code"] = string(ae.Code)
		} else {
			evt.Payload["error_code"] = string(apperrors.CodeInternal)
		}
	}
	s.events.Record(ctx, evt)
}

func (s *Service) toolIDs() []string {
	all := s.catalog.All()
	ids := make([]string, len(all))
	for i, t := range all {
		ids[i] = t.ID
	}
	return ids
}

func orAnonymous(userID string) string {
	if strings.TrimSpace(userID) == "" {
		return AnonymousUser
	}
	return userID
}

func remarshal(in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func toPayload(v any) map[string]any {
	var m map[string]any
	if err := remarshal(v, &m); err != nil {
		return map[string]any{}
	}
	return m
}
