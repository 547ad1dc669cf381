// Package models contains shared data models used across the reco-ai-demo codebase.
package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Amount is a numeric field that tolerates being encoded as a JSON string
// or null. Model output is not schema-guaranteed, so coercion happens once
// at the decode boundary; anything unparseable becomes zero.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*a = 0
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

// StringList tolerates a single JSON string where an array was expected.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil && s != "" {
		*l = StringList{s}
		return nil
	}
	*l = nil
	return nil
}

// Label is a string field that tolerates a JSON number (the model sometimes
// emits the estimated total as a bare number).
type Label string

func (t *Label) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*t = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*t = Label(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*t = Label(n.String())
		return nil
	}
	*t = ""
	return nil
}

// LineItem is one row of the cost estimate. After estimation,
// Subtotal == round(Qty * UnitPrice) regardless of what the model supplied.
type LineItem struct {
	Desc               string `json:"desc"`
	Qty                Amount `json:"qty"`
	Unit               string `json:"unit"`
	UnitPrice          Amount `json:"unit_price"`
	SuggestedUnitPrice Amount `json:"suggested_unit_price,omitempty"`
	Subtotal           Amount `json:"subtotal"`
}

// AnalysisResult is the structured output of a report analysis. Its JSON
// shape is part of the external contract and matches the schema the prompt
// asks the model for.
type AnalysisResult struct {
	Summary        string     `json:"summary"`
	MissingInfo    StringList `json:"missing_info"`
	Issues         StringList `json:"issues"`
	Improvements   string     `json:"improvements"`
	Items          []LineItem `json:"items"`
	EstimatedTotal Label      `json:"estimated_total"`
}

// MailOutcome reports what happened to an optional email notification.
// Nil means notification was not requested; a non-empty Error means the
// send failed but the analysis itself succeeded.
type MailOutcome struct {
	To        string `json:"to,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}
