package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/noah-isme/unagency-contact/pkg/contactclient"
	"github.com/noah-isme/unagency-contact/pkg/contactform"
)

const defaultEndpoint = "http://localhost:8080/api/send"

type sendOptions struct {
	name     string
	email    string
	message  string
	endpoint string
	mailto   string
	lang     string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "contact",
		Short:         "unAgency contact form client",
		Long:          `contact validates a contact submission locally and delivers it to the send endpoint or a mail program.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSendCmd())
	return root
}

func newSendCmd() *cobra.Command {
	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Validate and deliver a contact submission",
		Long: `Validate a submission with the same rules as the server and deliver it.

Example:
  contact send --name "Ana López" --email ana@example.com --message "I would like a quote."
  contact send --name Ana --email ana@example.com --message "Hola, quisiera una cotización." --lang es
  contact send --name Ana --email ana@example.com --message "Hello there!" --mailto hello@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.name, "name", "", "sender name")
	flags.StringVar(&opts.email, "email", "", "sender email address")
	flags.StringVar(&opts.message, "message", "", "message body")
	flags.StringVar(&opts.endpoint, "endpoint", defaultEndpoint, "send endpoint URL")
	flags.StringVar(&opts.mailto, "mailto", "", "build a mailto link for this address instead of calling the endpoint")
	flags.StringVar(&opts.lang, "lang", "en", "language tag for notices (en, es)")
	cmd.MarkFlagsMutuallyExclusive("endpoint", "mailto")

	return cmd
}

func runSend(ctx context.Context, stdout, stderr io.Writer, opts *sendOptions) error {
	var submitter contactclient.Submitter = contactclient.NewHTTPSubmitter(opts.endpoint)
	if opts.mailto != "" {
		submitter = &contactclient.MailtoSubmitter{
			Recipient: opts.mailto,
			Open: func(_ context.Context, link string) error {
				_, err := fmt.Fprintln(stdout, link)
				return err
			},
		}
	}

	form := contactclient.NewForm(contactclient.Options{
		Submitter:  submitter,
		Language:   opts.lang,
		ResetAfter: -1,
	})
	form.Set(contactform.FieldName, opts.name)
	form.Set(contactform.FieldEmail, opts.email)
	form.Set(contactform.FieldMessage, opts.message)

	receipt, err := form.Submit(ctx)
	snap := form.Snapshot()

	var verr *contactform.ValidationError
	switch {
	case errors.As(err, &verr):
		for _, field := range contactform.Fields {
			if msg, ok := snap.Errors[field]; ok {
				fmt.Fprintf(stderr, "%s: %s\n", field, msg)
			}
		}
		return errors.New("submission is invalid")
	case err != nil:
		fmt.Fprintln(stderr, snap.Notice)
		return err
	}

	if opts.mailto == "" {
		fmt.Fprintln(stdout, snap.Notice)
		if receipt.ID != "" {
			fmt.Fprintf(stdout, "id: %s\n", receipt.ID)
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
