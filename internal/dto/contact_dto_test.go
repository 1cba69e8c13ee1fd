package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/unagency-contact/internal/dto"
)

func TestParseContactRequest(t *testing.T) {
	req, err := dto.ParseContactRequest([]byte(`{"name":"Ana","email":"ana@example.com","message":"Hello there!","extra":1}`))
	require.NoError(t, err)
	assert.Equal(t, "Ana", req.Name)
	assert.Equal(t, "ana@example.com", req.Email)
	assert.Equal(t, "Hello there!", req.Message)

	submission := req.Submission()
	assert.Equal(t, req.Name, submission.Name)
}

func TestParseContactRequestMissingFieldsAreEmpty(t *testing.T) {
	req, err := dto.ParseContactRequest([]byte(`{"name":"Ana"}`))
	require.NoError(t, err)
	assert.Empty(t, req.Email)
	assert.Empty(t, req.Message)
}

func TestParseContactRequestRejectsInvalidBodies(t *testing.T) {
	cases := map[string]string{
		"empty":         ``,
		"malformed":     `{"name":`,
		"array":         `["Ana"]`,
		"string":        `"hello"`,
		"number field":  `{"name":42,"email":"ana@example.com","message":"Hello there!"}`,
		"object field":  `{"name":"Ana","email":{"a":1},"message":"Hello there!"}`,
		"trailing data": `{"name":"Ana"} {"name":"Bob"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := dto.ParseContactRequest([]byte(body))
			require.ErrorIs(t, err, dto.ErrInvalidBody)
		})
	}
}
