package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bulletin/pkg/domain"
	dErrors "bulletin/pkg/domain-errors"
)

func TestParseSubscriberEmailAcceptsValidAddress(t *testing.T) {
	email, err := domain.ParseSubscriberEmail("ursula@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ursula@example.com", email.String())
}

func TestParseSubscriberEmailRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"missing at symbol", "ursula.example.com"},
		{"missing local part", "@example.com"},
		{"missing domain", "ursula@"},
		{"spaces inside", "ursula le guin@example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.ParseSubscriberEmail(tc.raw)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), "expected validation error, got %v", err)
		})
	}
}
