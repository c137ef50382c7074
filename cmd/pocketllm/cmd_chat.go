package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/elee1766/pocketllm/src/chat"
	"github.com/elee1766/pocketllm/src/llm"
	"github.com/elee1766/pocketllm/src/theme"
)

// ChatCmd runs an interactive conversation on stdin/stdout
type ChatCmd struct{}

func (c *ChatCmd) Run(ctx *kong.Context, cli *CLI) error {
	cctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := ctx.Stdout
	a, err := openApp(cctx, cli, appParams{
		Conversation: true,
		OnStateChange: func(s llm.SessionState) {
			if s.IsResponding {
				fmt.Fprintln(out, theme.Status("thinking..."))
			}
		},
	})
	if err != nil {
		return err
	}
	defer a.Close()

	conv, err := a.NewChat(cctx)
	if err != nil {
		return err
	}
	err = runREPL(cctx, conv, os.Stdin, out)
	a.Logger.Info("chat ended", "chat", a.ChatID(), "messages", conv.Store().Len())
	return err
}

// runREPL reads one prompt per line until EOF or /quit. Assistant messages
// are rendered as the store appends them.
func runREPL(ctx context.Context, conv *chat.Chat, in io.Reader, out io.Writer) error {
	for _, m := range conv.Messages() {
		printMessage(out, m)
	}
	conv.Store().Subscribe(func(m chat.Message) {
		if !m.IsFromUser {
			printMessage(out, m)
		}
	})

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "/quit" {
			return nil
		}

		// A surfaced error already reached the store as a reply.
		if reply, err := conv.Send(ctx, line); err != nil && reply == nil {
			fmt.Fprintln(out, theme.ErrorLine(llm.UserMessage(err)))
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func printMessage(out io.Writer, m chat.Message) {
	if m.IsFromUser {
		fmt.Fprintln(out, theme.UserLine(m.Content))
		return
	}
	fmt.Fprintln(out, theme.AssistantLine(m.Content))
}
