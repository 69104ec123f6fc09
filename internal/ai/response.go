package ai

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// responseSchema describes the subset of a generateContent response this package relies on. Only the first candidate
// and its first part are constrained; anything else the provider sends is accepted and preserved.
const responseSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["candidates"],
	"properties": {
		"candidates": {
			"type": "array",
			"minItems": 1,
			"items": [{
				"type": "object",
				"required": ["content"],
				"properties": {
					"content": {
						"type": "object",
						"required": ["parts"],
						"properties": {
							"parts": {
								"type": "array",
								"minItems": 1,
								"items": [{
									"type": "object",
									"required": ["text"],
									"properties": {
										"text": {"type": "string"}
									}
								}]
							}
						}
					}
				}
			}]
		}
	}
}`

var compiledResponseSchema = mustCompileSchema(responseSchema)

func mustCompileSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic("invalid response schema: " + err.Error())
	}
	return schema
}

// ParseResponse validates a generateContent response body and extracts the text of the first part of the first
// candidate along with that candidate's content object, byte for byte as received.
func ParseResponse(body string) (answer string, content json.RawMessage, err error) {
	if !gjson.Valid(body) {
		return "", nil, &MalformedResponseError{Body: body, Reason: "response is not valid JSON"}
	}

	result, err := compiledResponseSchema.Validate(gojsonschema.NewStringLoader(body))
	if err != nil {
		return "", nil, &MalformedResponseError{Body: body, Reason: err.Error()}
	}
	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			reasons = append(reasons, e.String())
		}
		return "", nil, &MalformedResponseError{Body: body, Reason: strings.Join(reasons, "; ")}
	}

	c := gjson.Get(body, "candidates.0.content")
	answer = gjson.Get(body, "candidates.0.content.parts.0.text").String()

	return answer, json.RawMessage(c.Raw), nil
}
