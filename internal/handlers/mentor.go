package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
	"github.com/PratikDhanave/ai-eco-analytics/internal/catalog"
	"github.com/PratikDhanave/ai-eco-analytics/internal/genai"
	"github.com/PratikDhanave/ai-eco-analytics/internal/mentor"
)

// MaxImageBytes bounds uploaded workspace photos.
const MaxImageBytes = 8 << 20

type categorizeRequest struct {
	Description string `json:"description" validate:"required,max=4000"`
}

type explainRequest struct {
	UserID      string `json:"user_id" validate:"max=128"`
	Description string `json:"description" validate:"required,max=4000"`
	Context     string `json:"context" validate:"max=4000"`
}

type studyPlanRequest struct {
	UserID       string `json:"user_id" validate:"max=128"`
	Goal         string `json:"goal" validate:"required,max=1000"`
	HoursPerWeek int    `json:"hours_per_week" validate:"omitempty,min=1,max=80"`
}

type refineRequest struct {
	UserID string `json:"user_id" validate:"max=128"`
	Kind   string `json:"kind" validate:"required,max=64"`
	Text   string `json:"text" validate:"required,max=20000"`
	Tone   string `json:"tone" validate:"max=64"`
	Size   string `json:"size" validate:"max=64"`
}

// RegisterMentorRoutes registers the generation-backed endpoints. Every route except
// /tasks/categorize calls the generation service and passes through limit.
func RegisterMentorRoutes(r gin.IRouter, cat *catalog.Catalog, svc *mentor.Service, guard, limit gin.HandlerFunc) {
	r.POST("/tasks/categorize", func(c *gin.Context) {
		var req categorizeRequest
		if err := bindJSON(c, &req); err != nil {
			apperrors.Respond(c, err)
			return
		}
		category := mentor.Categorize(req.Description)
		tool, _ := cat.ForCategory(category)
		c.JSON(http.StatusOK, gin.H{"category": category, "default_tool": tool.ID})
	})

	r.POST("/mentor/explain", guard, limit, func(c *gin.Context) {
		var req explainRequest
		if err := bindJSON(c, &req); err != nil {
			apperrors.Respond(c, err)
			return
		}
		plan, err := svc.ExplainTask(c.Request.Context(), req.UserID, req.Description, req.Context)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, plan)
	})

	r.GET("/mentor/summary", limit, func(c *gin.Context) {
		text, err := svc.UsageSummary(c.Request.Context(), c.Query("user_id"))
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"summary": text})
	})

	r.POST("/mentor/study-plan", guard, limit, func(c *gin.Context) {
		var req studyPlanRequest
		if err := bindJSON(c, &req); err != nil {
			apperrors.Respond(c, err)
			return
		}
		if req.HoursPerWeek == 0 {
			req.HoursPerWeek = 4
		}
		plan, err := svc.StudyPlan(c.Request.Context(), req.UserID, req.Goal, req.HoursPerWeek)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, plan)
	})

	r.POST("/mentor/refine", guard, limit, func(c *gin.Context) {
		var req refineRequest
		if err := bindJSON(c, &req); err != nil {
			apperrors.Respond(c, err)
			return
		}
		if req.Tone == "" {
			req.Tone = "professional"
		}
		if req.Size == "" {
			req.Size = "medium"
		}
		out, err := svc.RefineText(c.Request.Context(), req.UserID, req.Kind, req.Text, req.Tone, req.Size)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	r.POST("/vision/workspace", guard, limit, func(c *gin.Context) {
		img, err := readImage(c)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		out, err := svc.AnalyzeWorkspace(c.Request.Context(), c.PostForm("user_id"), img)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
}

// readImage reads the multipart "image" field. The MIME type comes from the part
// header, or is sniffed when the client sent none.
func readImage(c *gin.Context) (genai.Image, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return genai.Image{}, apperrors.Validation("multipart field \"image\" is required")
	}
	if fh.Size > MaxImageBytes {
		return genai.Image{}, apperrors.Validation("image exceeds %d bytes", MaxImageBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return genai.Image{}, apperrors.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageBytes+1))
	if err != nil {
		return genai.Image{}, apperrors.Internal(err)
	}
	if len(data) == 0 {
		return genai.Image{}, apperrors.Validation("image is empty")
	}
	if len(data) > MaxImageBytes {
		return genai.Image{}, apperrors.Validation("image exceeds %d bytes", MaxImageBytes)
	}

	mime := fh.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mime, "image/") {
		return genai.Image{}, apperrors.Validation("image must be an image/* file, got %q", mime)
	}
	return genai.Image{MIMEType: mime, Data: data}, nil
}
