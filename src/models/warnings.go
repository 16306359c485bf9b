package models

import "fmt"

// WarningCode categorizes warnings by pipeline stage.
// W1xxx = extraction gaps, W2xxx = mapping gaps, W3xxx = date parsing.
type WarningCode string

const (
	WarnSectionNotFound    WarningCode = "W1001" // no anchor phrase matched in the document
	WarnValueNotFound      WarningCode = "W1002" // account name present but no percentage nearby, zero-filled
	WarnNoCanonicalMapping WarningCode = "W2001" // raw account name has no canonical fund type
	WarnDateUnknown        WarningCode = "W3001" // no date pattern matched, as-of date unknown
)

// Warning represents a non-fatal issue encountered during ingestion.
// Warnings never abort the pipeline; they ride along on the partial result.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

func NewWarning(code WarningCode, format string, args ...interface{}) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
