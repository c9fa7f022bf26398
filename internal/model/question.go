// Package model defines the core domain types for survey generation and
// event data extraction.
package model

import "strings"

// QuestionType is the closed set of supported question types.
type QuestionType string

const (
	TypeText         QuestionType = "text"
	TypeTextarea     QuestionType = "textarea"
	TypeSingleSelect QuestionType = "single-select"
	TypeMultiSelect  QuestionType = "multi-select"
	TypeLikert       QuestionType = "likert"
)

// LikertScale is the canonical 5-point scale. Every likert question carries
// exactly these options, regardless of what the model supplied.
var LikertScale = []string{"Strongly Disagree", "Disagree", "Neutral", "Agree", "Strongly Agree"}

// typeAliases maps legacy and loosely-cased wire forms onto canonical types.
// The original survey builder emitted "Single-select" etc.
var typeAliases = map[string]QuestionType{
	"text":          TypeText,
	"textarea":      TypeTextarea,
	"single-select": TypeSingleSelect,
	"single_select": TypeSingleSelect,
	"singleselect":  TypeSingleSelect,
	"multi-select":  TypeMultiSelect,
	"multi_select":  TypeMultiSelect,
	"multiselect":   TypeMultiSelect,
	"likert":        TypeLikert,
}

// CoerceType maps an arbitrary type string onto the closed enum.
// Unknown types fall back to text.
func CoerceType(raw string) QuestionType {
	if t, ok := typeAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t
	}
	return TypeText
}

// RequiresOptions reports whether the type must carry an options list.
func (t QuestionType) RequiresOptions() bool {
	switch t {
	case TypeSingleSelect, TypeMultiSelect, TypeLikert:
		return true
	}
	return false
}

// Question is a single survey question. Options is nil unless Type requires
// options. Order is unique and monotonic within a question set; negative
// orders are reserved for universal/demographic questions prepended by the
// caller.
type Question struct {
	Text     string       `json:"question_text"`
	Type     QuestionType `json:"question_type"`
	Options  []string     `json:"options,omitempty"`
	Required bool         `json:"required"`
	Order    int          `json:"order"`
}

// Section groups questions during generation and validation. The persisted
// and returned form is always a flattened ordered list.
type Section struct {
	Name      string     `json:"section_name"`
	Questions []Question `json:"questions"`
}

// FlattenSections concatenates section questions in section order.
func FlattenSections(sections []Section) []Question {
	var out []Question
	for _, s := range sections {
		out = append(out, s.Questions...)
	}
	return out
}

// ValidationResult is the advisory judgment from the validation call.
// Absent or malformed validator output defaults to Passed so a silent judge
// never blocks the pipeline.
type ValidationResult struct {
	Passed                 bool   `json:"validation_passed"`
	RefinementInstructions string `json:"refinement_instructions,omitempty"`
}
