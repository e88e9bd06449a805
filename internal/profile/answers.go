package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/pathwise/internal/catalog"
)

// ErrInvalidAnswers is returned when an answers document does not match the
// question bank.
var ErrInvalidAnswers = errors.New("invalid answers")

const answersSchemaURL = "schema://pathwise/answers.json"

var (
	answersSchemaOnce sync.Once
	answersSchema     *jsonschema.Schema
	answersSchemaErr  error
)

// AnswersSchema returns the JSON schema for an answers document: an object
// mapping question ids to one of that question's option values.
func AnswersSchema() map[string]any {
	props := make(map[string]any)
	for _, q := range catalog.AllQuestions() {
		values := make([]any, len(q.Options))
		for i, o := range q.Options {
			values[i] = o.Value
		}
		props[q.ID] = map[string]any{
			"type":        "string",
			"enum":        values,
			"description": q.Text,
		}
	}
	return map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
		"minProperties":        1,
	}
}

func compiledAnswersSchema() (*jsonschema.Schema, error) {
	answersSchemaOnce.Do(func() {
		// The compiler wants a decoded JSON value, so round-trip the map.
		raw, err := json.Marshal(AnswersSchema())
		if err != nil {
			answersSchemaErr = fmt.Errorf("marshal answers schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			answersSchemaErr = fmt.Errorf("parse answers schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(answersSchemaURL, doc); err != nil {
			answersSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		answersSchema, answersSchemaErr = c.Compile(answersSchemaURL)
	})
	return answersSchema, answersSchemaErr
}

// ParseAnswers validates a JSON answers document and decodes it.
func ParseAnswers(raw []byte) (map[string]string, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnswers, err)
	}
	schema, err := compiledAnswersSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnswers, err)
	}

	var answers map[string]string
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnswers, err)
	}
	return answers, nil
}
