package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatRequest_Validate(t *testing.T) {
	valid := ChatRequest{Question: "What does the company do?"}
	assert.NoError(t, valid.Validate())

	empty := ChatRequest{}
	assert.Error(t, empty.Validate())
}

func TestSaveValuationRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		growth  float64
		wantErr bool
	}{
		{"zero growth", 0, false},
		{"mid slider", 75, false},
		{"slider maximum", 200, false},
		{"negative", -5, true},
		{"beyond slider", 250, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := SaveValuationRequest{GrowthPercent: tt.growth}
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
