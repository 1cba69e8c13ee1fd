package mailer

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"
)

// PostmarkSender sends emails through Postmark's transactional API.
type PostmarkSender struct {
	client *postmark.Client
}

// NewPostmarkSender creates a Postmark sender. Only the server token is needed
// to send; the account token may be empty.
func NewPostmarkSender(serverToken, accountToken string) *PostmarkSender {
	return NewPostmarkSenderWithClient(postmark.NewClient(serverToken, accountToken))
}

// NewPostmarkSenderWithClient wraps an existing Postmark client.
func NewPostmarkSenderWithClient(client *postmark.Client) *PostmarkSender {
	return &PostmarkSender{client: client}
}

// Send implements Sender. Postmark reports some failures in a 200 response
// body, so a non-zero ErrorCode is treated as a rejection too.
func (s *PostmarkSender) Send(ctx context.Context, msg Message) (string, error) {
	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     msg.From,
		To:       msg.To,
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		Tag:      "contact-form",
		HTMLBody: msg.HTML,
		TextBody: msg.Text,
	})
	if err != nil {
		return "", &ProviderError{Provider: "postmark", Err: err}
	}
	if resp.ErrorCode > 0 {
		return "", &ProviderError{
			Provider: "postmark",
			Err:      fmt.Errorf("error %d: %s", resp.ErrorCode, resp.Message),
		}
	}

	return resp.MessageID, nil
}
