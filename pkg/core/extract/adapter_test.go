package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLLM struct {
	gotPrompt string
	gotSystem string
	response  string
}

func (r *recordingLLM) GenerateResponse(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	r.gotPrompt = prompt
	r.gotSystem = systemPrompt
	return r.response, nil
}

func (r *recordingLLM) AdaptInstructions(raw string) string { return raw }

// The extractor passes (system, user); the provider expects (prompt,
// system). A swap would send the schema instructions as the document.
func TestLLMAdapterPreservesArgumentOrder(t *testing.T) {
	llmStub := &recordingLLM{response: `[{"code":"100","name":"KASA","debit":1,"credit":0}]`}
	adapter := NewLLMAdapter(llmStub)

	out, err := adapter.Generate(context.Background(), "system instructions", "document text")
	require.NoError(t, err)
	assert.Equal(t, llmStub.response, out)
	assert.Equal(t, "document text", llmStub.gotPrompt)
	assert.Equal(t, "system instructions", llmStub.gotSystem)
}

func TestLLMAdapterDrivesExtraction(t *testing.T) {
	llmStub := &recordingLLM{response: `[
		{"code":"100","name":"KASA","debit":5000,"credit":1000,"debit_balance":4000,"credit_balance":0}
	]`}

	accounts, err := NewExtractor(NewLLMAdapter(llmStub)).ExtractAccounts(context.Background(), "mizan text")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "100", accounts[0].Code)
	assert.Contains(t, llmStub.gotPrompt, "mizan text")
	assert.NotEmpty(t, llmStub.gotSystem)
}
