package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sawitpro/palmstore/internal/chat"
	"github.com/sawitpro/palmstore/internal/models"
	"github.com/sawitpro/palmstore/internal/responder"
	"github.com/sawitpro/palmstore/pkg/logger"
)

const defaultEndpoint = "http://localhost:8080/chat"

type options struct {
	endpoint string
	lang     string
	timeout  time.Duration
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "palmpal",
		Short: "Chat with the PalmPal farming assistant",
		Long: `palmpal talks to a PalmPal POST /chat endpoint.

Available subcommands:
  ask  - send one question and print the reply
  chat - interactive session (/lang, /prompts, /quit)`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.endpoint, "endpoint", defaultEndpoint, "chat endpoint URL")
	flags.StringVar(&opts.lang, "lang", "en", "reply language (en or id)")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout")
	flags.StringVar(&opts.logLevel, "log-level", "error", "log level")

	root.AddCommand(newAskCmd(opts), newChatCmd(opts))
	return root
}

// newSession builds a chat session backed by the remote endpoint
func (o *options) newSession(stderr io.Writer) (*chat.Session, error) {
	lang, err := models.ParseLanguage(o.lang)
	if err != nil {
		return nil, err
	}

	log := logger.NewWriter(stderr, o.logLevel, "text")
	r := responder.NewRemoteResponder(o.endpoint, nil, o.timeout)

	return chat.NewSession(r,
		chat.WithLanguage(lang),
		chat.WithApology(responder.PalmPalApology),
		chat.WithLogger(log),
	), nil
}

func newAskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Send one question and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.newSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			reply, err := sess.Submit(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
			return nil
		},
	}
}
