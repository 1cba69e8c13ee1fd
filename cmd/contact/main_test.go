package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestSendCommandPostsToEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Email sent successfully","id":"email-7"}`))
	}))
	defer server.Close()

	stdout, _, err := execute(t, "send",
		"--name", "Ana López",
		"--email", "ana@example.com",
		"--message", "I would like a quote.",
		"--endpoint", server.URL,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Message sent successfully! We'll contact you soon.")
	assert.Contains(t, stdout, "id: email-7")
}

func TestSendCommandReportsFieldErrors(t *testing.T) {
	_, stderr, err := execute(t, "send", "--name", "A", "--email", "ana@example.com", "--message", "Hi", "--lang", "es")
	require.Error(t, err)
	assert.Contains(t, stderr, "name: El nombre debe tener entre 2 y 100 caracteres y solo letras")
	assert.Contains(t, stderr, "message: El mensaje debe tener entre 10 y 2000 caracteres")
	assert.NotContains(t, stderr, "email:")
}

func TestSendCommandServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Email service not configured"}`))
	}))
	defer server.Close()

	_, stderr, err := execute(t, "send", "--name", "Ana", "--email", "ana@example.com", "--message", "I would like a quote.", "--endpoint", server.URL)
	require.Error(t, err)
	assert.Contains(t, stderr, "Email service not configured")
}

func TestSendCommandMailto(t *testing.T) {
	stdout, _, err := execute(t, "send", "--name", "Ana", "--email", "ana@example.com", "--message", "I would like a quote.", "--mailto", "hello@example.com")
	require.NoError(t, err)
	assert.Contains(t, stdout, "mailto:hello@example.com?subject=New%20Inquiry%20from%20Ana&body=")
}
