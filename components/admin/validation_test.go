package admin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadValidatorAcceptsValidScenario(t *testing.T) {
	v := NewPayloadValidator()
	err := v.Validate(CollectionScenarios, map[string]any{
		"title":       "Checkpoint reported",
		"description": "Guidance for community members.",
		"category":    "ice_detention",
		"severity":    "critical",
	})
	require.NoError(t, err)
}

func TestPayloadValidatorRejectsBadScenarios(t *testing.T) {
	v := NewPayloadValidator()
	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"missing title", map[string]any{
			"description": "d", "category": "asylum", "severity": "low",
		}},
		{"empty title", map[string]any{
			"title": "", "description": "d", "category": "asylum", "severity": "low",
		}},
		{"unknown category", map[string]any{
			"title": "t", "description": "d", "category": "weather", "severity": "low",
		}},
		{"unknown severity", map[string]any{
			"title": "t", "description": "d", "category": "asylum", "severity": "urgent",
		}},
		{"extra field", map[string]any{
			"title": "t", "description": "d", "category": "asylum", "severity": "low", "priority": 1,
		}},
		{"nil payload", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(CollectionScenarios, tc.payload)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation), "error should classify as validation: %v", err)
		})
	}
}

func TestPayloadValidatorRejectsBadResources(t *testing.T) {
	v := NewPayloadValidator()
	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"empty categories", map[string]any{
			"name": "n", "description": "d",
			"categories": []any{}, "languages": []any{"en"},
		}},
		{"unknown language", map[string]any{
			"name": "n", "description": "d",
			"categories": []any{"asylum"}, "languages": []any{"xx"},
		}},
		{"wrong emergency type", map[string]any{
			"name": "n", "description": "d", "is_emergency": "yes",
			"categories": []any{"asylum"}, "languages": []any{"en"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(CollectionResources, tc.payload)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestPayloadValidatorAcceptsValidResource(t *testing.T) {
	v := NewPayloadValidator()
	err := v.Validate(CollectionResources, map[string]any{
		"name":         "Rapid response hotline",
		"description":  "24/7 hotline.",
		"phone_number": "+1-555-0100",
		"is_emergency": true,
		"categories":   []any{"ice_detention", "deportation"},
		"languages":    []any{"en", "es"},
	})
	require.NoError(t, err)
}

func TestPayloadValidatorPassesUnknownCollections(t *testing.T) {
	v := NewPayloadValidator()
	require.NoError(t, v.Validate("unschemad", map[string]any{"anything": true}))
}
