package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sawitpro/palmstore/internal/chat"
	"github.com/sawitpro/palmstore/internal/responder"
)

func newChatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive PalmPal session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.newSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return repl(cmd, sess)
		},
	}
}

func repl(cmd *cobra.Command, sess *chat.Session) error {
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintln(out, responder.PalmPalGreeting)
	for {
		fmt.Fprint(out, "> ")
		if !in.Scan() {
			fmt.Fprintln(out)
			return in.Err()
		}

		line := strings.TrimSpace(in.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return nil
		case line == "/lang":
			fmt.Fprintf(out, "language: %s\n", sess.ToggleLanguage())
			continue
		case line == "/prompts":
			printPrompts(out)
			continue
		}

		reply, err := sess.Submit(cmd.Context(), line)
		if err != nil {
			if errors.Is(err, chat.ErrEmptyMessage) {
				continue
			}
			return err
		}
		fmt.Fprintln(out, reply.Text)
	}
}

func printPrompts(out io.Writer) {
	for i, p := range chat.ExamplePrompts {
		fmt.Fprintf(out, "  %d. %s\n", i+1, p)
	}
}
