package agent

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Function names the model may call.
const (
	FunctionLogTransaction   = "LogTransaction"
	FunctionReadTransactions = "ReadTransactions"
)

// DateLayout is the calendar date format used in prompts, parameters and replies.
const DateLayout = "2006-01-02"

const fence = "```"

type IntentKind int

const (
	// IntentParseFailure means the model output was not a usable function call.
	IntentParseFailure IntentKind = iota
	// IntentUnknown is a well-formed call to a function that does not exist.
	IntentUnknown
	IntentLogTransaction
	IntentReadTransactions
)

func (k IntentKind) String() string {
	switch k {
	case IntentUnknown:
		return "Unknown"
	case IntentLogTransaction:
		return FunctionLogTransaction
	case IntentReadTransactions:
		return FunctionReadTransactions
	default:
		return "ParseFailure"
	}
}

// LogTransactionCall holds the LogTransaction parameters as the model sent
// them. Nil or empty fields were missing or malformed; defaults are applied
// by the dispatcher.
type LogTransactionCall struct {
	Amount      *decimal.Decimal
	Category    string
	Description string
	Date        *time.Time
}

// Intent is the decoded meaning of model output. Name is set for Unknown and
// recognized calls; LogTransaction is set only for IntentLogTransaction.
type Intent struct {
	Kind           IntentKind
	Name           string
	LogTransaction *LogTransactionCall
}

type functionCall struct {
	Name       string          `json:"name"`
	Function   string          `json:"function"`
	Parameters json.RawMessage `json:"parameters"`
}

// Parse decodes raw model output into an Intent. It never panics; anything
// that is not a JSON object with a non-empty name is a parse failure.
func Parse(raw string) Intent {
	var call functionCall
	if err := json.Unmarshal([]byte(stripFences(raw)), &call); err != nil {
		return Intent{Kind: IntentParseFailure}
	}

	name := strings.TrimSpace(call.Name)
	if name == "" {
		name = strings.TrimSpace(call.Function)
	}
	if name == "" {
		return Intent{Kind: IntentParseFailure}
	}

	switch {
	case strings.EqualFold(name, FunctionLogTransaction):
		return Intent{
			Kind:           IntentLogTransaction,
			Name:           FunctionLogTransaction,
			LogTransaction: parseLogTransaction(call.Parameters),
		}
	case strings.EqualFold(name, FunctionReadTransactions):
		return Intent{Kind: IntentReadTransactions, Name: FunctionReadTransactions}
	default:
		return Intent{Kind: IntentUnknown, Name: name}
	}
}

// stripFences removes the outermost code fence. A lone marker is removed on
// its own, and a language tag directly after the opening fence is dropped.
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	first := strings.Index(text, fence)
	if first < 0 {
		return text
	}

	last := strings.LastIndex(text, fence)
	if first == last {
		text = text[:first] + text[first+len(fence):]
	} else {
		text = text[first+len(fence) : last]
	}

	text = strings.TrimSpace(text)
	if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
		text = text[4:]
	}
	return strings.TrimSpace(text)
}

func parseLogTransaction(params json.RawMessage) *LogTransactionCall {
	call := &LogTransactionCall{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(params, &fields); err != nil {
		return call
	}

	call.Amount = parseAmount(fields["amount"])
	call.Category = strings.TrimSpace(parseString(fields["category"]))
	call.Description = parseString(fields["description"])
	call.Date = parseDate(parseString(fields["date"]))
	return call
}

func parseString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// parseAmount accepts a JSON number or a numeric string and keeps its exact
// decimal value.
func parseAmount(raw json.RawMessage) *decimal.Decimal {
	if len(raw) == 0 {
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		if d, err := decimal.NewFromString(number.String()); err == nil {
			return &d
		}
		return nil
	}

	if d, err := decimal.NewFromString(strings.TrimSpace(parseString(raw))); err == nil {
		return &d
	}
	return nil
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if d, err := time.Parse(DateLayout, s); err == nil {
		return &d
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		date := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		return &date
	}
	return nil
}
