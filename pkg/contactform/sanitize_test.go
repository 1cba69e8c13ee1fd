package contactform_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/unagency-contact/pkg/contactform"
)

func TestSanitizeStripsMarkup(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Hello world", want: "Hello world"},
		{name: "tags", input: "<b>Hello</b> world", want: "Hello world"},
		{name: "script block", input: "<script>alert('x')</script>Hi there", want: "Hi there"},
		{name: "script uri", input: "javascript:alert(1)", want: "alert(1)"},
		{name: "event handlers", input: `<a href="#" onclick="steal()">x</a> onmouseover=run()`, want: "x run()"},
		{name: "entities decoded", input: "Tom &amp; Jerry", want: "Tom & Jerry"},
		{name: "encoded tags", input: "&lt;b&gt;bold&lt;/b&gt;", want: "bold"},
		{name: "apostrophe", input: "O'Brien", want: "O'Brien"},
		{name: "trimmed", input: "  padded \n", want: "padded"},
		{name: "empty", input: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, contactform.Sanitize(tc.input))
		})
	}
}

func TestSanitizePreservesInternalWhitespace(t *testing.T) {
	message := "Line one\n\nLine   two\ttabbed"
	require.Equal(t, message, contactform.Sanitize(message))
	require.Equal(t, message, contactform.Sanitize(contactform.Sanitize(message)))
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Hello, I would like a quote for a branding project.",
		"<div><p>nested <i>tags</i></p></div>",
		"5 < 6 and 7 > 3",
		"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;",
		"JaVaScRiPt :void(0)",
		"<<b>>double<</b>>",
		"java<>script:alert(1)",
		"ONLOAD = boom",
	}

	for _, input := range inputs {
		once := contactform.Sanitize(input)
		twice := contactform.Sanitize(once)
		require.Equal(t, once, twice, "input %q", input)
		require.NotContains(t, once, "<", "input %q", input)
		require.NotContains(t, once, ">", "input %q", input)
		require.NotContains(t, strings.ToLower(once), "javascript:", "input %q", input)
	}
}

func TestSanitizeDeeplyNestedEntities(t *testing.T) {
	input := "&" + strings.Repeat("amp;", 40) + "lt;b&gt;x"

	once := contactform.Sanitize(input)
	require.Equal(t, "x", once)
	require.Equal(t, once, contactform.Sanitize(once))
}

func TestSanitizeInvalidUTF8(t *testing.T) {
	once := contactform.Sanitize("caf\xe9 <b>ok</b>")
	require.Equal(t, once, contactform.Sanitize(once))
	require.NotContains(t, once, "<")
}
