package llm

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestModelWithSystemLeavesSharedModelUntouched(t *testing.T) {
	c := &geminiClient{model: &genai.GenerativeModel{}, name: "gemini-1.5-flash"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			system := fmt.Sprintf("instructions for request %d", n)
			model := c.modelWithSystem(system)

			if model.SystemInstruction == nil || len(model.SystemInstruction.Parts) != 1 {
				t.Errorf("Expected a single-part system instruction, got %+v", model.SystemInstruction)
				return
			}
			got := string(model.SystemInstruction.Parts[0].(genai.Text))
			if got != system {
				t.Errorf("Expected instruction '%s', got '%s'", system, got)
			}
		}(i)
	}
	wg.Wait()

	if c.model.SystemInstruction != nil {
		t.Error("Shared model must not carry per-call system instructions")
	}
}
