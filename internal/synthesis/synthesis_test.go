package synthesis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/siue-cs/eddiebot/internal/memory/models"
	"github.com/siue-cs/eddiebot/provider"
)

type stubProvider struct {
	replies []string // consumed in call order; last one repeats
	err     error
	prompts []string
}

func (p *stubProvider) Converse(ctx context.Context, prompt string, maxTokens int) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return "", p.err
	}
	i := len(p.prompts) - 1
	if i >= len(p.replies) {
		i = len(p.replies) - 1
	}
	return p.replies[i], nil
}

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestChunkWordsShortInput(t *testing.T) {
	chunks := ChunkWords("a b c", 1200, 100)
	if len(chunks) != 1 || chunks[0] != "a b c" {
		t.Errorf("chunks = %v", chunks)
	}
	if got := ChunkWords("   ", 1200, 100); got != nil {
		t.Errorf("whitespace input = %v", got)
	}
}

func TestChunkWordsCoverage(t *testing.T) {
	text := words(3000)
	chunks := ChunkWords(text, 1200, 100)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks", len(chunks))
	}
	// consecutive chunks share exactly the overlap, so no word is skipped
	for i := 1; i < len(chunks); i++ {
		prev := strings.Fields(chunks[i-1])
		cur := strings.Fields(chunks[i])
		tail := strings.Join(prev[len(prev)-100:], " ")
		head := strings.Join(cur[:100], " ")
		if tail != head {
			t.Errorf("chunk %d does not overlap its predecessor", i)
		}
	}
	last := strings.Fields(chunks[len(chunks)-1])
	if last[len(last)-1] != "w2999" {
		t.Errorf("final word = %q", last[len(last)-1])
	}
	if strings.Fields(chunks[0])[0] != "w0" {
		t.Error("first chunk does not start at the first word")
	}
}

func TestFormatHistory(t *testing.T) {
	history := []models.Turn{
		{Role: models.RoleUser, Text: "hi", Timestamp: time.Now()},
		{Role: models.RoleAssistant, Text: "hello", Timestamp: time.Now()},
	}
	got := FormatHistory(history, 2500)
	if got != "USER: hi\nASSISTANT: hello" {
		t.Errorf("FormatHistory = %q", got)
	}
}

func TestFormatHistoryKeepsTail(t *testing.T) {
	long := strings.Repeat("x", 3000)
	history := []models.Turn{
		{Role: models.RoleUser, Text: long},
		{Role: models.RoleAssistant, Text: "recent"},
	}
	got := FormatHistory(history, 2500)
	if len(got) != 2500 {
		t.Errorf("len = %d, want 2500", len(got))
	}
	if !strings.HasSuffix(got, "ASSISTANT: recent") {
		t.Error("tail truncation lost the most recent turn")
	}
}

func TestFormatHistoryLastTwelveTurns(t *testing.T) {
	var history []models.Turn
	for i := 0; i < 20; i++ {
		history = append(history, models.Turn{Role: models.RoleUser, Text: fmt.Sprintf("m%d", i)})
	}
	got := FormatHistory(history, 100000)
	if strings.Contains(got, "m7\n") || !strings.Contains(got, "m8") {
		t.Errorf("history window wrong: %q", got)
	}
}

func TestGenerateAnswerFiltersSentinel(t *testing.T) {
	p := &stubProvider{replies: []string{"partial one", "not_found", "4300 words -> 4 chunks, last extraction", "final answer"}}
	s := New(p)
	// 4300 words -> chunks at 0, 1100, 2200, 3300 -> 4 extraction calls
	reply, err := s.GenerateAnswer(context.Background(), "q", words(4300), "events", nil, nil)
	if err != nil {
		t.Fatalf("GenerateAnswer failed: %v", err)
	}
	if reply != "final answer" {
		t.Errorf("reply = %q", reply)
	}
	if len(p.prompts) != 5 {
		t.Fatalf("model called %d times, want 4 extractions + 1 synthesis", len(p.prompts))
	}
	final := p.prompts[len(p.prompts)-1]
	if !strings.Contains(final, "partial one") {
		t.Error("synthesis prompt is missing a partial answer")
	}
	if strings.Contains(final, "not_found") {
		t.Error("sentinel (case-insensitive) leaked into synthesis prompt")
	}
}

func TestGenerateAnswerChunkCap(t *testing.T) {
	p := &stubProvider{replies: []string{"partial"}}
	s := New(p)
	// 12000 words would make ~10 chunks; extraction must stop at 5
	if _, err := s.GenerateAnswer(context.Background(), "q", words(12000), "events", nil, nil); err != nil {
		t.Fatalf("GenerateAnswer failed: %v", err)
	}
	if len(p.prompts) != 6 {
		t.Errorf("model called %d times, want 5 extractions + 1 synthesis", len(p.prompts))
	}
}

func TestGenerateAnswerEmptyContextStillSynthesizes(t *testing.T) {
	p := &stubProvider{replies: []string{"no specific information found"}}
	s := New(p)
	reply, err := s.GenerateAnswer(context.Background(), "q", "", "general", nil, nil)
	if err != nil {
		t.Fatalf("GenerateAnswer failed: %v", err)
	}
	if reply == "" {
		t.Error("empty reply")
	}
	if len(p.prompts) != 1 {
		t.Errorf("model called %d times, want just the synthesis call", len(p.prompts))
	}
}

func TestGenerateAnswerIncludesStyleAndLinks(t *testing.T) {
	p := &stubProvider{replies: []string{"partial", "final"}}
	s := New(p)
	urls := []string{
		"https://www.siue.edu/1", "https://www.siue.edu/2", "https://www.siue.edu/3",
		"https://www.siue.edu/4", "https://www.siue.edu/5", "https://www.siue.edu/6",
		"https://www.siue.edu/7", "https://www.siue.edu/8", "https://www.siue.edu/9",
	}
	history := []models.Turn{{Role: models.RoleUser, Text: "earlier question"}}
	if _, err := s.GenerateAnswer(context.Background(), "q", "some context", "advising", history, urls); err != nil {
		t.Fatalf("GenerateAnswer failed: %v", err)
	}
	final := p.prompts[len(p.prompts)-1]
	if !strings.Contains(final, "step-by-step") {
		t.Error("advising style hint missing")
	}
	if !strings.Contains(final, "earlier question") {
		t.Error("history block missing")
	}
	if !strings.Contains(final, "https://www.siue.edu/8") {
		t.Error("allowed link missing")
	}
	if strings.Contains(final, "https://www.siue.edu/9") {
		t.Error("allow-list not capped at 8")
	}
}

func TestGenerateAnswerPropagatesLLMError(t *testing.T) {
	p := &stubProvider{err: errors.New("throttled")}
	s := New(p)
	_, err := s.GenerateAnswer(context.Background(), "q", "some context", "events", nil, nil)
	var le *provider.LLMError
	if !errors.As(err, &le) {
		t.Fatalf("want *provider.LLMError, got %v", err)
	}
}
