package synthesis

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/siue-cs/eddiebot/internal/memory/models"
	"github.com/siue-cs/eddiebot/provider"
)

const (
	ChunkSize    = 1200 // words per context chunk
	ChunkOverlap = 100  // words shared with the previous chunk

	maxChunks          = 5 // cost/latency bound on extraction calls
	maxHistoryTurns    = 12
	maxHistoryChars    = 2500
	maxAllowedLinks    = 8
	extractMaxTokens   = 200
	synthesisMaxTokens = 400

	// Sentinel is the exact string the model returns when a chunk holds
	// nothing relevant; matched case-insensitively on the way back.
	Sentinel = "NOT_FOUND"
)

const systemPolicy = `You are EddieBot, an official SIUE assistant.

Rules:
- Be professional, helpful, and student-friendly.
- Do not be insulting or negative about SIUE or any individuals.
- Avoid controversial topics (politics, hate, explicit content). Redirect back to campus resources.
- Use the provided SIUE webpage information when available.
- If you do not know, say so and suggest where to check (official SIUE site) or ask a clarifying question.
- Do not invent facts, dates, or policies.`

var styleHints = map[string]string{
	"advising": `STYLE:
- Provide step-by-step guidance the student can follow.
- Include relevant links, offices, or contact info if present.
- If scheduling is mentioned, explain the process clearly.`,
	"engineering_news": `STYLE:
- Summarize the most recent updates.
- If dates are present, include them.
- Give 2-5 key highlights, not a huge list.`,
	"events": `STYLE:
- Mention upcoming events and relevant dates/times if present.
- Keep it brief and offer to narrow by date range or interest.`,
	"clubs": `STYLE:
- Explain how to find/join organizations.
- Avoid long lists unless the student explicitly asks for a list.
- If giving examples, keep it to 3-6.`,
}

// Synthesizer turns retrieved page context into one answer via a map-reduce
// pass over the model: extract per chunk, then combine.
type Synthesizer struct {
	llm    provider.Provider
	logger *log.Logger
}

func New(llm provider.Provider) *Synthesizer {
	return &Synthesizer{
		llm:    llm,
		logger: log.New(log.Writer(), "[LLM] ", log.LstdFlags),
	}
}

// ChunkWords splits text into word-bounded chunks where each chunk after the
// first repeats the last overlap words of its predecessor, so no word falls
// between two chunks.
func ChunkWords(text string, size, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var chunks []string
	for start := 0; start < len(words); {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
		start = end - overlap
	}
	return chunks
}

// FormatHistory renders the most recent turns as role-tagged lines, keeping
// the tail when the block overflows the character limit.
func FormatHistory(history []models.Turn, maxChars int) string {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		role := "USER"
		if turn.Role == models.RoleAssistant {
			role = "ASSISTANT"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, turn.Text))
	}
	text := strings.Join(lines, "\n")
	if len(text) > maxChars {
		text = text[len(text)-maxChars:]
	}
	return text
}

func (s *Synthesizer) extractFromChunk(ctx context.Context, question, chunk, historyBlock string) (string, error) {
	prompt := fmt.Sprintf(`%s

CONVERSATION CONTEXT (most recent):
%s

TASK:
- Extract ONLY what helps answer the student question.
- Summarize in 2-5 sentences.
- If answering with a list would make sense, such as a list of clubs or events, you may add that after the summary.
- Do NOT copy page text or UI/navigation labels.

If the information is not present, respond with EXACTLY:
%s

UNIVERSITY INFORMATION:
%s

STUDENT QUESTION:
%s
`, systemPolicy, historyBlock, Sentinel, chunk, question)
	return s.llm.Converse(ctx, prompt, extractMaxTokens)
}

// GenerateAnswer runs extraction over the first five context chunks, filters
// the sentinel, and issues one synthesis call combining the partial answers,
// the conversation history and the link allow-list. The synthesis call runs
// even with zero partial answers; the model then states that nothing
// specific was found. Model failures surface as *provider.LLMError.
func (s *Synthesizer) GenerateAnswer(ctx context.Context, question, pageContext, category string, history []models.Turn, allowedURLs []string) (string, error) {
	historyBlock := FormatHistory(history, maxHistoryChars)

	chunks := ChunkWords(pageContext, ChunkSize, ChunkOverlap)
	if len(chunks) > maxChunks {
		chunks = chunks[:maxChunks]
	}

	var partials []string
	for _, chunk := range chunks {
		ans, err := s.extractFromChunk(ctx, question, chunk, historyBlock)
		if err != nil {
			s.logger.Printf("chunk extraction failed: %v", err)
			return "", &provider.LLMError{Err: err}
		}
		if !strings.EqualFold(strings.TrimSpace(ans), Sentinel) {
			partials = append(partials, ans)
		}
	}

	allowedLinksBlock := ""
	if len(allowedURLs) > 0 {
		if len(allowedURLs) > maxAllowedLinks {
			allowedURLs = allowedURLs[:maxAllowedLinks]
		}
		allowedLinksBlock = "ALLOWED LINKS (you may only use these exact URLs):\n" + strings.Join(allowedURLs, "\n")
	}

	prompt := fmt.Sprintf(`%s

Respond in a natural, conversational tone for students.

%s

CONVERSATION CONTEXT (most recent):
%s

%s
LINK RULES:
- Only include links from ALLOWED LINKS above.
- Never invent, guess, rewrite, or "pretty print" URLs.
- If no ALLOWED LINKS are relevant, do not include any links.

Combine the partial answers into ONE clear answer.
- Remove duplicates
- Avoid long lists unless the student asked for a list
- Do NOT invent new information
- Answer the student directly. Do not quote webpage text

PARTIAL ANSWERS:
%s
`, systemPolicy, styleHints[category], historyBlock, allowedLinksBlock, strings.Join(partials, "\n"))

	reply, err := s.llm.Converse(ctx, prompt, synthesisMaxTokens)
	if err != nil {
		s.logger.Printf("synthesis failed: %v", err)
		return "", &provider.LLMError{Err: err}
	}
	return reply, nil
}
