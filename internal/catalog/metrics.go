package catalog

// defaultMetrics is the built-in metric table. Concept candidates are ordered
// by priority, but actual selection is data-directed: the candidate with the
// freshest fiscal year wins because filers switch tags over time.
var defaultMetrics = []MetricDefinition{
	{
		ID:          "revenue",
		DisplayName: "Revenue",
		Description: "Total revenue from contracts with customers",
		Statement:   StatementIncome,
		UnitType:    UnitCurrency,
		Aggregation: AggregationSum,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "RevenueFromContractWithCustomerExcludingAssessedTax", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "Revenues", Priority: 2},
			{Taxonomy: "us-gaap", Concept: "SalesRevenueNet", Priority: 3, ValidTo: 2018},
		},
	},
	{
		ID:          "cost_of_revenue",
		DisplayName: "Cost of Revenue",
		Description: "Direct costs attributable to revenue",
		Statement:   StatementIncome,
		UnitType:    UnitCurrency,
		Aggregation: AggregationSum,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "CostOfRevenue", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "CostOfGoodsAndServicesSold", Priority: 2},
		},
	},
	{
		ID:          "gross_profit",
		DisplayName: "Gross Profit",
		Description: "Revenue less cost of revenue",
		Statement:   StatementIncome,
		UnitType:    UnitCurrency,
		Aggregation: AggregationSum,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "GrossProfit", Priority: 1},
		},
	},
	{
		ID:          "operating_income",
		DisplayName: "Operating Income",
		Description: "Income from operations before interest and taxes",
		Statement:   StatementIncome,
		UnitType:    UnitCurrency,
		Aggregation: AggregationSum,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "OperatingIncomeLoss", Priority: 1},
		},
	},
	{
		ID:          "net_income",
		DisplayName: "Net Income",
		Description: "Net income attributable to the parent",
		Statement:   StatementIncome,
		UnitType:    UnitCurrency,
		Aggregation: AggregationSum,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "NetIncomeLoss", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "ProfitLoss", Priority: 2},
		},
	},
	{
		ID:          "eps_diluted",
		DisplayName: "EPS (Diluted)",
		Description: "Diluted earnings per share",
		Statement:   StatementIncome,
		UnitType:    UnitRatio,
		Unit:        "USD/shares",
		Aggregation: AggregationSum,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "EarningsPerShareDiluted", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "EarningsPerShareBasicAndDiluted", Priority: 2},
		},
	},
	{
		ID:          "research_development",
		DisplayName: "R&D Expense",
		Description: "Research and development expense",
		Statement:   StatementIncome,
		UnitType:    UnitCurrency,
		Aggregation: AggregationSum,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "ResearchAndDevelopmentExpense", Priority: 1},
		},
	},
	{
		ID:          "sga_expense",
		DisplayName: "SG&A Expense",
		Description: "Selling, general and administrative expense",
		Statement:   StatementIncome,
		UnitType:    UnitCurrency,
		Aggregation: AggregationSum,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "SellingGeneralAndAdministrativeExpense", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "GeneralAndAdministrativeExpense", Priority: 2},
		},
	},
	{
		ID:          "interest_expense",
		DisplayName: "Interest Expense",
		Description: "Interest expense on borrowings",
		Statement:   StatementIncome,
		UnitType:    UnitCurrency,
		Aggregation: AggregationSum,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "InterestExpense", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "InterestExpenseDebt", Priority: 2},
		},
	},
	{
		ID:          "income_tax",
		DisplayName: "Income Tax Expense",
		Description: "Current and deferred income tax expense",
		Statement:   StatementIncome,
		UnitType:    UnitCurrency,
		Aggregation: AggregationSum,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "IncomeTaxExpenseBenefit", Priority: 1},
		},
	},
	{
		ID:          "operating_cash_flow",
		DisplayName: "Operating Cash Flow",
		Description: "Net cash provided by operating activities",
		Statement:   StatementCashFlow,
		UnitType:    UnitCurrency,
		Aggregation: AggregationSum,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "NetCashProvidedByUsedInOperatingActivities", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "NetCashProvidedByUsedInOperatingActivitiesContinuingOperations", Priority: 2},
		},
	},
	{
		ID:          "capital_expenditures",
		DisplayName: "Capital Expenditures",
		Description: "Payments to acquire property, plant and equipment",
		Statement:   StatementCashFlow,
		UnitType:    UnitCurrency,
		Aggregation: AggregationSum,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "PaymentsToAcquirePropertyPlantAndEquipment", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "PaymentsToAcquireProductiveAssets", Priority: 2},
		},
	},
	{
		ID:          "dividends_paid",
		DisplayName: "Dividends Paid",
		Description: "Cash dividends paid to shareholders",
		Statement:   StatementCashFlow,
		UnitType:    UnitCurrency,
		Aggregation: AggregationSum,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "PaymentsOfDividendsCommonStock", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "PaymentsOfDividends", Priority: 2},
		},
	},
	{
		ID:          "stock_buybacks",
		DisplayName: "Stock Buybacks",
		Description: "Payments for repurchase of common stock",
		Statement:   StatementCashFlow,
		UnitType:    UnitCurrency,
		Aggregation: AggregationSum,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "PaymentsForRepurchaseOfCommonStock", Priority: 1},
		},
	},
	{
		ID:          "total_assets",
		DisplayName: "Total Assets",
		Description: "Total assets at period end",
		Statement:   StatementBalanceSheet,
		UnitType:    UnitCurrency,
		Aggregation: AggregationEndOfPeriod,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "Assets", Priority: 1},
		},
	},
	{
		ID:          "total_liabilities",
		DisplayName: "Total Liabilities",
		Description: "Total liabilities at period end",
		Statement:   StatementBalanceSheet,
		UnitType:    UnitCurrency,
		Aggregation: AggregationEndOfPeriod,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "Liabilities", Priority: 1},
		},
	},
	{
		ID:          "stockholders_equity",
		DisplayName: "Stockholders' Equity",
		Description: "Total stockholders' equity at period end",
		Statement:   StatementBalanceSheet,
		UnitType:    UnitCurrency,
		Aggregation: AggregationEndOfPeriod,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "StockholdersEquity", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest", Priority: 2},
		},
	},
	{
		ID:          "current_assets",
		DisplayName: "Current Assets",
		Description: "Assets expected to convert to cash within a year",
		Statement:   StatementBalanceSheet,
		UnitType:    UnitCurrency,
		Aggregation: AggregationEndOfPeriod,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "AssetsCurrent", Priority: 1},
		},
	},
	{
		ID:          "current_liabilities",
		DisplayName: "Current Liabilities",
		Description: "Obligations due within a year",
		Statement:   StatementBalanceSheet,
		UnitType:    UnitCurrency,
		Aggregation: AggregationEndOfPeriod,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "LiabilitiesCurrent", Priority: 1},
		},
	},
	{
		ID:          "cash_and_equivalents",
		DisplayName: "Cash & Equivalents",
		Description: "Cash and cash equivalents at period end",
		Statement:   StatementBalanceSheet,
		UnitType:    UnitCurrency,
		Aggregation: AggregationEndOfPeriod,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "CashAndCashEquivalentsAtCarryingValue", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents", Priority: 2},
		},
	},
	{
		ID:          "long_term_debt",
		DisplayName: "Long-Term Debt",
		Description: "Long-term borrowings at period end",
		Statement:   StatementBalanceSheet,
		UnitType:    UnitCurrency,
		Aggregation: AggregationEndOfPeriod,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "LongTermDebtNoncurrent", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "LongTermDebt", Priority: 2},
		},
	},
	{
		ID:          "inventory",
		DisplayName: "Inventory",
		Description: "Net inventory at period end",
		Statement:   StatementBalanceSheet,
		UnitType:    UnitCurrency,
		Aggregation: AggregationEndOfPeriod,
		Concepts: []XbrlConcept{
			{Taxonomy: "us-gaap", Concept: "InventoryNet", Priority: 1},
		},
	},
	{
		ID:          "shares_outstanding",
		DisplayName: "Shares Outstanding",
		Description: "Common shares outstanding at period end",
		Statement:   StatementBalanceSheet,
		UnitType:    UnitShares,
		Aggregation: AggregationEndOfPeriod,
		Concepts: []XbrlConcept{
			{Taxonomy: "dei", Concept: "EntityCommonStockSharesOutstanding", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "CommonStockSharesOutstanding", Priority: 2},
		},
	},
}
