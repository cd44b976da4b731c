package catalog

// defaultRatios is the built-in derived-ratio table. Free cash flow is the
// one subtraction; everything else divides.
var defaultRatios = []RatioDefinition{
	{ID: "net_margin", DisplayName: "Net Margin", Numerator: "net_income", Denominator: "revenue", Operation: OperationDivide, Format: FormatPercentage},
	{ID: "gross_margin", DisplayName: "Gross Margin", Numerator: "gross_profit", Denominator: "revenue", Operation: OperationDivide, Format: FormatPercentage},
	{ID: "operating_margin", DisplayName: "Operating Margin", Numerator: "operating_income", Denominator: "revenue", Operation: OperationDivide, Format: FormatPercentage},
	{ID: "free_cash_flow", DisplayName: "Free Cash Flow", Numerator: "operating_cash_flow", Denominator: "capital_expenditures", Operation: OperationSubtract, Format: FormatCurrency},
	{ID: "debt_to_equity", DisplayName: "Debt to Equity", Numerator: "total_liabilities", Denominator: "stockholders_equity", Operation: OperationDivide, Format: FormatMultiple},
	{ID: "current_ratio", DisplayName: "Current Ratio", Numerator: "current_assets", Denominator: "current_liabilities", Operation: OperationDivide, Format: FormatMultiple},
	{ID: "return_on_assets", DisplayName: "Return on Assets", Numerator: "net_income", Denominator: "total_assets", Operation: OperationDivide, Format: FormatPercentage},
	{ID: "return_on_equity", DisplayName: "Return on Equity", Numerator: "net_income", Denominator: "stockholders_equity", Operation: OperationDivide, Format: FormatPercentage},
	{ID: "interest_coverage", DisplayName: "Interest Coverage", Numerator: "operating_income", Denominator: "interest_expense", Operation: OperationDivide, Format: FormatMultiple},
}
