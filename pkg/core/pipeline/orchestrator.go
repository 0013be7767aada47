// Package pipeline wires ingestion, extraction, statement assembly and
// persistence into one period-processing flow.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"finstat_engine/pkg/core/cashflow"
	"finstat_engine/pkg/core/extract"
	"finstat_engine/pkg/core/ingest"
	"finstat_engine/pkg/core/ledger"
	"finstat_engine/pkg/core/statements"
	"finstat_engine/pkg/core/store"
)

// DocumentFormat tells the orchestrator how to read an uploaded document.
type DocumentFormat string

const (
	FormatXLSX DocumentFormat = "xlsx"
	FormatHTML DocumentFormat = "html"
	FormatText DocumentFormat = "text"
	// FormatFreeForm routes the document through the LLM extractor
	// instead of the deterministic parsers.
	FormatFreeForm DocumentFormat = "free_form"
)

// PeriodResult is everything one processed period produced.
type PeriodResult struct {
	TrialBalance    *ledger.TrialBalance
	BalanceSheet    *statements.BalanceSheetSnapshot
	IncomeStatement *statements.IncomeStatementSnapshot
	CashFlow        *cashflow.Statement
	Warnings        []string
	FromCache       bool
	Elapsed         time.Duration
}

// Orchestrator manages the end-to-end flow for one uploaded document:
// parse/extract -> trial balance -> statements -> cash flow -> storage.
type Orchestrator struct {
	extractor *extract.Extractor
	cache     *store.ExtractionCache
	tbRepo    *store.TrialBalanceRepo
	stmtRepo  *store.StatementsRepo
	mapping   ledger.ChartMapping
}

// NewOrchestrator creates an orchestrator. extractor and cache may be nil
// when free-form extraction is not needed; the repos may be nil to skip
// persistence (e.g. dry runs and tests).
func NewOrchestrator(extractor *extract.Extractor, cache *store.ExtractionCache, tbRepo *store.TrialBalanceRepo, stmtRepo *store.StatementsRepo) *Orchestrator {
	return &Orchestrator{
		extractor: extractor,
		cache:     cache,
		tbRepo:    tbRepo,
		stmtRepo:  stmtRepo,
		mapping:   ledger.DefaultChartMapping(),
	}
}

// SetChartMapping replaces the default chart mapping, e.g. after a YAML
// overlay.
func (o *Orchestrator) SetChartMapping(mapping ledger.ChartMapping) {
	o.mapping = mapping
}

// ProcessDocument runs the full flow for one document and period.
// priorYear may be nil; the cash flow derivation then carries a warning
// instead of failing.
func (o *Orchestrator) ProcessDocument(ctx context.Context, userID string, year, month int, document []byte, format DocumentFormat, prior *statements.BalanceSheetSnapshot) (*PeriodResult, error) {
	start := time.Now()
	result := &PeriodResult{}

	accounts, fromCache, err := o.parse(ctx, document, format, result)
	if err != nil {
		return nil, err
	}
	result.FromCache = fromCache

	tb := ledger.BuildTrialBalance(accounts, year, month)
	result.TrialBalance = tb

	assembled := statements.Assemble(tb, o.mapping, statements.SourceFileUpload)
	result.BalanceSheet = assembled.BalanceSheet
	result.IncomeStatement = assembled.IncomeStatement
	result.Warnings = append(result.Warnings, assembled.Warnings...)

	cf, err := cashflow.Derive(cashflow.Inputs{
		Current: assembled.BalanceSheet,
		Prior:   prior,
		Income:  assembled.IncomeStatement,
	})
	if err != nil {
		return nil, fmt.Errorf("cash flow derivation failed: %w", err)
	}
	result.CashFlow = cf
	result.Warnings = append(result.Warnings, cf.Warnings...)

	if err := o.persist(ctx, userID, month, result); err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

func (o *Orchestrator) parse(ctx context.Context, document []byte, format DocumentFormat, result *PeriodResult) ([]ingest.ParsedAccount, bool, error) {
	switch format {
	case FormatXLSX:
		parsed, err := ingest.ParseXLSX(bytes.NewReader(document))
		if err != nil {
			return nil, false, err
		}
		result.Warnings = append(result.Warnings, parsed.Warnings...)
		return parsed.Accounts, false, nil

	case FormatHTML:
		parsed, err := ingest.ParseHTML(bytes.NewReader(document))
		if err != nil {
			return nil, false, err
		}
		result.Warnings = append(result.Warnings, parsed.Warnings...)
		return parsed.Accounts, false, nil

	case FormatText:
		parsed, err := ingest.ParseText(string(document))
		if err != nil {
			return nil, false, err
		}
		result.Warnings = append(result.Warnings, parsed.Warnings...)
		return parsed.Accounts, false, nil

	case FormatFreeForm:
		return o.extractFreeForm(ctx, document)

	default:
		return nil, false, fmt.Errorf("unsupported document format %q", format)
	}
}

// extractFreeForm consults the cache before paying for a model call.
func (o *Orchestrator) extractFreeForm(ctx context.Context, document []byte) ([]ingest.ParsedAccount, bool, error) {
	if o.extractor == nil {
		return nil, false, fmt.Errorf("free-form documents need an extractor")
	}

	var hash string
	if o.cache != nil {
		hash = store.DocumentHash(document)
		if cached, err := o.cache.Get(ctx, hash); err == nil && cached != nil {
			return cached, true, nil
		}
	}

	accounts, err := o.extractor.ExtractAccounts(ctx, string(document))
	if err != nil {
		return nil, false, err
	}

	if o.cache != nil {
		if err := o.cache.Save(ctx, hash, "gemini", accounts); err != nil {
			fmt.Printf("Warning: failed to cache extraction: %v\n", err)
		}
	}
	return accounts, false, nil
}

func (o *Orchestrator) persist(ctx context.Context, userID string, month int, result *PeriodResult) error {
	if o.tbRepo != nil {
		if err := o.tbRepo.Save(ctx, userID, result.TrialBalance); err != nil {
			return fmt.Errorf("failed to persist trial balance: %w", err)
		}
	}
	if o.stmtRepo != nil {
		if err := o.stmtRepo.SaveBalanceSheet(ctx, userID, month, result.BalanceSheet); err != nil {
			return fmt.Errorf("failed to persist balance sheet: %w", err)
		}
		if err := o.stmtRepo.SaveIncomeStatement(ctx, userID, month, result.IncomeStatement); err != nil {
			return fmt.Errorf("failed to persist income statement: %w", err)
		}
	}
	return nil
}
