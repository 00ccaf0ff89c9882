package server

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/siue-cs/eddiebot/internal/classifier"
	"github.com/siue-cs/eddiebot/internal/memory"
	"github.com/siue-cs/eddiebot/internal/memory/models"
	"github.com/siue-cs/eddiebot/internal/safety"
	"github.com/siue-cs/eddiebot/internal/sources"
)

const (
	// NoContextReply goes out when every source fetch failed; the model is
	// not called on this path.
	NoContextReply = "I couldn't find specific university information for that question yet. " +
		"Try asking about events, clubs, or advising."

	// DegradedReply replaces the answer when the model invocation fails.
	DegradedReply = "The assistant is temporarily unavailable. Please try again shortly."
)

// ContextRetriever gathers grounding text for a classified question.
type ContextRetriever interface {
	RetrieveContext(ctx context.Context, category, message string) string
}

// AnswerGenerator synthesizes a reply from question, context and history.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, question, pageContext, category string, history []models.Turn, allowedURLs []string) (string, error)
}

// ChatHandler runs the chat pipeline: safety gate, classification,
// retrieval, synthesis, session memory.
type ChatHandler struct {
	Memory    memory.Store
	Retriever ContextRetriever
	Synth     AnswerGenerator
	Logger    *log.Logger
}

func (h *ChatHandler) Register(e *echo.Echo) {
	e.POST("/chat", h.Chat)
}

func (h *ChatHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid request body")
	}
	if strings.TrimSpace(req.SessionID) == "" || strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "session_id and message are required")
	}

	ctx := c.Request().Context()

	allowed, blockedReply := safety.Check(req.Message)
	if !allowed {
		// the refusal still lands in history so the transcript stays consistent
		h.Memory.Add(req.SessionID, models.RoleUser, req.Message)
		h.Memory.Add(req.SessionID, models.RoleAssistant, blockedReply)
		chatRequests.WithLabelValues("blocked").Inc()
		return c.JSON(http.StatusOK, ChatResponse{Reply: blockedReply, Category: "blocked"})
	}

	category := classifier.Classify(req.Message)
	pageContext := h.Retriever.RetrieveContext(ctx, category, req.Message)

	// The user turn is recorded before history is read, so synthesis sees
	// the question it is about to answer inside the history block.
	h.Memory.Add(req.SessionID, models.RoleUser, req.Message)
	history := h.Memory.Get(req.SessionID)

	var reply string
	if pageContext == "" {
		emptyContexts.Inc()
		reply = NoContextReply
	} else {
		answer, err := h.Synth.GenerateAnswer(ctx, req.Message, pageContext, category, history, sources.ForCategory(category))
		if err != nil {
			h.Logger.Printf("model call failed: %v", err)
			llmFailures.Inc()
			reply = DegradedReply
		} else {
			reply = answer
		}
	}

	h.Memory.Add(req.SessionID, models.RoleAssistant, reply)
	chatRequests.WithLabelValues(category).Inc()
	return c.JSON(http.StatusOK, ChatResponse{Reply: reply, Category: category})
}
