package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSender_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		sender Sender
		valid  bool
	}{
		{"user sender", SenderUser, true},
		{"bot sender", SenderBot, true},
		{"empty sender", Sender(""), false},
		{"unknown sender", Sender("system"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.sender.IsValid())
		})
	}
}

func TestEmotionLabel_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		label EmotionLabel
		valid bool
	}{
		{"positive", EmotionPositive, true},
		{"negative", EmotionNegative, true},
		{"neutral", EmotionNeutral, true},
		{"unknown", EmotionUnknown, true},
		{"empty", EmotionLabel(""), false},
		{"arbitrary", EmotionLabel("angry"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.label.IsValid())
		})
	}
}

func TestNotFoundError_Error(t *testing.T) {
	err := NotFoundError{Resource: "UserProfile", ID: "U12345"}
	assert.Equal(t, "UserProfile with ID 'U12345' not found", err.Error())
}
