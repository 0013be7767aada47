package ledger

import (
	"fmt"

	yaml "gopkg.in/yaml.v2"
)

// Section classifies a parent code into a statement section. The section
// decides which balance side contributes to statement assembly: asset
// codes contribute their debit balance, liability and equity codes their
// credit balance, income codes feed the income statement waterfall.
type Section string

const (
	SectionAsset     Section = "asset"
	SectionLiability Section = "liability"
	SectionEquity    Section = "equity"
	SectionIncome    Section = "income"
)

// FieldMapping routes one parent code to a canonical statement field.
// Contra accounts are subtracted from their section total instead of
// added (e.g. accumulated depreciation reduces fixed assets). Contra
// status is data here, not a hard-coded special case at call sites:
// adding a new contra account is a mapping change only.
type FieldMapping struct {
	Field  string  `yaml:"field"`
	Sect   Section `yaml:"section"`
	Contra bool    `yaml:"contra,omitempty"`
	// Role tags income-statement codes for the waterfall:
	// sales, sales_deduction, cost_of_sales, operating_expense,
	// other_income, other_expense.
	Role string `yaml:"role,omitempty"`
}

// ChartMapping is the full code->field table.
type ChartMapping map[string]FieldMapping

// DefaultChartMapping returns the built-in mapping for the uniform
// 3-digit chart of accounts (1xx current assets through 6xx income and
// expenses).
func DefaultChartMapping() ChartMapping {
	return ChartMapping{
		// Current assets
		"100": {Field: "cash_on_hand", Sect: SectionAsset},
		"101": {Field: "cheques_received", Sect: SectionAsset},
		"102": {Field: "banks", Sect: SectionAsset},
		"120": {Field: "trade_receivables", Sect: SectionAsset},
		"121": {Field: "notes_receivable", Sect: SectionAsset},
		"131": {Field: "due_from_partners", Sect: SectionAsset},
		"153": {Field: "inventory", Sect: SectionAsset},
		"180": {Field: "prepaid_expenses", Sect: SectionAsset},
		"190": {Field: "deferred_vat", Sect: SectionAsset},
		"191": {Field: "deductible_vat", Sect: SectionAsset},

		// Fixed assets
		"252": {Field: "buildings", Sect: SectionAsset},
		"253": {Field: "machinery_equipment", Sect: SectionAsset},
		"254": {Field: "vehicles", Sect: SectionAsset},
		"255": {Field: "fixtures", Sect: SectionAsset},
		"257": {Field: "accumulated_depreciation", Sect: SectionAsset, Contra: true},
		"258": {Field: "construction_in_progress", Sect: SectionAsset},

		// Liabilities
		"300": {Field: "bank_loans", Sect: SectionLiability},
		"320": {Field: "trade_payables", Sect: SectionLiability},
		"321": {Field: "notes_payable", Sect: SectionLiability},
		"331": {Field: "due_to_partners", Sect: SectionLiability},
		"335": {Field: "personnel_payables", Sect: SectionLiability},
		"360": {Field: "taxes_payable", Sect: SectionLiability},
		"361": {Field: "social_security_payable", Sect: SectionLiability},
		"391": {Field: "vat_payable", Sect: SectionLiability},
		"400": {Field: "long_term_bank_loans", Sect: SectionLiability},

		// Equity
		"500": {Field: "paid_in_capital", Sect: SectionEquity},
		"501": {Field: "unpaid_capital", Sect: SectionEquity, Contra: true},
		"540": {Field: "legal_reserves", Sect: SectionEquity},
		"570": {Field: "retained_earnings", Sect: SectionEquity},
		"580": {Field: "accumulated_losses", Sect: SectionEquity, Contra: true},
		"590": {Field: "net_profit_current_period", Sect: SectionEquity},
		"591": {Field: "net_loss_current_period", Sect: SectionEquity, Contra: true},

		// Income statement
		"600": {Field: "gross_sales_domestic", Sect: SectionIncome, Role: "sales"},
		"601": {Field: "gross_sales_foreign", Sect: SectionIncome, Role: "sales"},
		"602": {Field: "other_revenue", Sect: SectionIncome, Role: "sales"},
		"610": {Field: "sales_returns", Sect: SectionIncome, Role: "sales_deduction"},
		"611": {Field: "sales_discounts", Sect: SectionIncome, Role: "sales_deduction"},
		"620": {Field: "cost_of_goods_sold", Sect: SectionIncome, Role: "cost_of_sales"},
		"621": {Field: "cost_of_merchandise_sold", Sect: SectionIncome, Role: "cost_of_sales"},
		"622": {Field: "cost_of_services_sold", Sect: SectionIncome, Role: "cost_of_sales"},
		"630": {Field: "rd_expenses", Sect: SectionIncome, Role: "operating_expense"},
		"631": {Field: "marketing_expenses", Sect: SectionIncome, Role: "operating_expense"},
		"632": {Field: "general_admin_expenses", Sect: SectionIncome, Role: "operating_expense"},
		"642": {Field: "interest_income", Sect: SectionIncome, Role: "other_income"},
		"660": {Field: "short_term_interest_expense", Sect: SectionIncome, Role: "other_expense"},
		"689": {Field: "other_expenses", Sect: SectionIncome, Role: "other_expense"},
	}
}

// ApplyYAMLOverlay merges mapping entries from YAML on top of the
// receiver. Deployments use this to extend the chart of accounts or to
// flag additional contra accounts without a code change.
//
// YAML shape:
//
//	"650":
//	  field: fx_losses
//	  section: income
//	  role: other_expense
//	"259":
//	  field: advances_for_fixed_assets
//	  section: asset
func (m ChartMapping) ApplyYAMLOverlay(data []byte) error {
	overlay := ChartMapping{}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse chart mapping overlay: %w", err)
	}
	for code, entry := range overlay {
		m[code] = entry
	}
	return nil
}

// Lookup returns the mapping for a parent code, falling back to a
// range-based classification for codes outside the explicit table so
// unknown accounts still land in the right statement section.
func (m ChartMapping) Lookup(code string) (FieldMapping, bool) {
	if entry, ok := m[code]; ok {
		return entry, true
	}
	if len(code) != 3 {
		return FieldMapping{}, false
	}
	switch code[0] {
	case '1', '2':
		return FieldMapping{Field: "other_assets", Sect: SectionAsset}, true
	case '3', '4':
		return FieldMapping{Field: "other_liabilities", Sect: SectionLiability}, true
	case '5':
		return FieldMapping{Field: "other_equity", Sect: SectionEquity}, true
	case '6':
		return FieldMapping{Field: "other_income_expense", Sect: SectionIncome, Role: "other_expense"}, true
	}
	return FieldMapping{}, false
}
