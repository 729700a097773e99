package metering

import "time"

// CreditType identifies the pricing unit a grant or line item is denominated in.
type CreditType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ScheduleItem struct {
	Amount float64 `json:"amount"`
}

// LedgerEntry records consumption against a grant. Negative amounts are draws.
type LedgerEntry struct {
	Amount float64 `json:"amount"`
}

// Grant is a credit or commit balance allocation for a customer.
type Grant struct {
	ID                  string         `json:"id"`
	Type                string         `json:"type"`
	ProductName         string         `json:"product_name"`
	CreditType          CreditType     `json:"credit_type"`
	AccessScheduleItems []ScheduleItem `json:"access_schedule_items"`
	LedgerEntries       []LedgerEntry  `json:"ledger_entries"`
}

// LineItem is one line of a time-bucketed usage breakdown.
type LineItem struct {
	Name                    string            `json:"name"`
	ProductType             string            `json:"product_type"`
	Total                   float64           `json:"total"`
	CreditTypeName          string            `json:"credit_type_name"`
	PricingGroupValues      map[string]string `json:"pricing_group_values,omitempty"`
	PresentationGroupValues map[string]string `json:"presentation_group_values,omitempty"`
}

// UsageBreakdown is one time bucket of an invoice breakdown.
type UsageBreakdown struct {
	Type        string     `json:"type"`
	PeriodStart time.Time  `json:"period_start"`
	Total       float64    `json:"total"`
	LineItems   []LineItem `json:"line_items"`
}

// AppliedCommitOrCredit marks a draft-invoice line as drawing down a balance.
type AppliedCommitOrCredit struct {
	ID string `json:"id"`
}

type DraftInvoiceLineItem struct {
	Name                  string                 `json:"name"`
	Total                 float64                `json:"total"`
	CreditTypeName        string                 `json:"credit_type_name"`
	ProductType           string                 `json:"product_type"`
	AppliedCommitOrCredit *AppliedCommitOrCredit `json:"applied_commit_or_credit,omitempty"`
}

// DraftInvoice is an in-progress invoice reflecting current-period spend.
type DraftInvoice struct {
	ID             string                 `json:"id"`
	CreditTypeName string                 `json:"credit_type_name"`
	Total          float64                `json:"total"`
	LineItems      []DraftInvoiceLineItem `json:"line_items"`
}

type Alert struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
	Enabled   bool    `json:"enabled"`
	Status    string  `json:"status"`
}

// AlertRecord pairs an alert definition with its status for one customer.
type AlertRecord struct {
	CustomerStatus string `json:"customer_status"`
	Alert          Alert  `json:"alert"`
}

type Customer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ExternalID string `json:"external_id"`
}

type Subscription struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

type Contract struct {
	ID            string         `json:"id"`
	StartingAt    time.Time      `json:"starting_at"`
	EndingBefore  *time.Time     `json:"ending_before,omitempty"`
	Subscriptions []Subscription `json:"subscriptions"`
}

type BillableMetric struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	GroupKeys []string `json:"group_keys"`
}

// UsageGroupRow is one grouped usage value for a billable metric.
type UsageGroupRow struct {
	GroupKey   string  `json:"group_key"`
	GroupValue string  `json:"group_value"`
	Value      float64 `json:"value"`
}

// UsageEvent is one raw usage event for ingestion or preview.
type UsageEvent struct {
	CustomerID    string         `json:"customer_id"`
	EventType     string         `json:"event_type"`
	TransactionID string         `json:"transaction_id"`
	Timestamp     time.Time      `json:"timestamp"`
	Properties    map[string]any `json:"properties,omitempty"`
}

// PreviewResult is the priced outcome of hypothetical events.
type PreviewResult struct {
	Total     float64                `json:"total"`
	LineItems []DraftInvoiceLineItem `json:"line_items"`
}
