// Package extract turns unstructured trial-balance documents into parsed
// account rows using an LLM provider. The model proposes rows; the code
// validates them. Nothing the model says is trusted until it passes the
// schema and account-code checks.
package extract

import (
	"context"
	"fmt"
	"strings"

	"finstat_engine/pkg/core/ingest"
	"finstat_engine/pkg/core/utils"
)

// AIProvider interface for LLM interaction
type AIProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// ExternalServiceError wraps a provider failure so callers can tell
// "the model was unreachable" apart from "the model returned garbage".
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external service %s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// Extractor handles LLM-based extraction of trial balance rows from
// free-form document text.
type Extractor struct {
	provider AIProvider
}

// NewExtractor creates a new extractor
func NewExtractor(provider AIProvider) *Extractor {
	return &Extractor{provider: provider}
}

// System prompt for trial balance extraction.
const SystemPrompt = `You are an expert accountant working with the Turkish uniform chart of accounts.
Your task is to extract trial balance rows from document text (mizan / muavin dökümü).

You must strictly adhere to the following JSON schema for your output:
[
  {
    "code": "string (3-digit account code, optionally with sub-account suffix, e.g. 100 or 320.01)",
    "name": "string (account name as written)",
    "debit": number,
    "credit": number,
    "debit_balance": number,
    "credit_balance": number
  }
]

Rules:
1. Only extract rows that are explicitly present in the text.
2. Numbers use Turkish formatting (5.000,00 means five thousand); output plain JSON numbers.
3. If a balance column is absent, set debit_balance and credit_balance to 0.
4. If no trial balance rows are found, return an empty array [].
`

type extractedRow struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Debit         float64 `json:"debit"`
	Credit        float64 `json:"credit"`
	DebitBalance  float64 `json:"debit_balance"`
	CreditBalance float64 `json:"credit_balance"`
}

// maxDocumentLen caps the text sent to the provider.
const maxDocumentLen = 15000

// ExtractAccounts sends the document text to the provider and validates
// the returned rows. A single attempt: a failed extraction surfaces as an
// error for the caller to decide on, never a silent retry.
func (e *Extractor) ExtractAccounts(ctx context.Context, documentText string) ([]ingest.ParsedAccount, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("no AI provider configured")
	}

	text := documentText
	if len(text) > maxDocumentLen {
		text = text[:maxDocumentLen] + "... [truncated]"
	}

	userPrompt := fmt.Sprintf(`
Document text:
%s

Extract every trial balance row you can find.
Return ONLY valid JSON.
`, text)

	resp, err := e.provider.Generate(ctx, SystemPrompt, userPrompt)
	if err != nil {
		return nil, &ExternalServiceError{Service: "llm", Err: err}
	}

	var rows []extractedRow
	if _, err := utils.SmartParse(resp, &rows); err != nil {
		return nil, &ingest.ValidationError{
			Reason: fmt.Sprintf("model response is not parseable JSON: %v", err),
		}
	}

	accounts := make([]ingest.ParsedAccount, 0, len(rows))
	for i, row := range rows {
		if err := validateRow(i, row); err != nil {
			return nil, err
		}
		acc := ingest.ParsedAccount{
			Code:          strings.TrimSpace(row.Code),
			Name:          strings.TrimSpace(row.Name),
			Debit:         row.Debit,
			Credit:        row.Credit,
			DebitBalance:  row.DebitBalance,
			CreditBalance: row.CreditBalance,
		}
		if acc.DebitBalance == 0 && acc.CreditBalance == 0 {
			acc.DebitBalance, acc.CreditBalance = deriveBalances(acc.Debit, acc.Credit)
		}
		accounts = append(accounts, acc)
	}

	if len(accounts) == 0 {
		return nil, &ingest.ValidationError{Reason: "model returned no trial balance rows"}
	}

	return accounts, nil
}

func validateRow(idx int, row extractedRow) error {
	code := strings.TrimSpace(row.Code)
	if !ingest.IsAccountCode(code) {
		return &ingest.ValidationError{
			Reason: fmt.Sprintf("row %d: %q is not a valid account code", idx, code),
		}
	}
	if strings.TrimSpace(row.Name) == "" {
		return &ingest.ValidationError{
			Reason: fmt.Sprintf("row %d (%s): account name is empty", idx, code),
		}
	}
	if row.Debit < 0 || row.Credit < 0 {
		return &ingest.ValidationError{
			Reason: fmt.Sprintf("row %d (%s): turnover columns must be non-negative", idx, code),
		}
	}
	return nil
}

func deriveBalances(debit, credit float64) (debitBalance, creditBalance float64) {
	net := debit - credit
	if net >= 0 {
		return net, 0
	}
	return 0, -net
}
