package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

// PromptCmd represents the single prompt command
type PromptCmd struct {
	Text   []string `arg:"" optional:"" help:"The prompt text to send"`
	File   string   `short:"f" type:"existingfile" help:"Load prompt from file"`
	Output string   `short:"o" enum:"text,json" default:"text" help:"Output format (text, json)"`
}

func (p *PromptCmd) Run(ctx *kong.Context, cli *CLI) error {
	text := strings.Join(p.Text, " ")
	if p.File != "" {
		data, err := os.ReadFile(p.File)
		if err != nil {
			return fmt.Errorf("failed to read prompt file: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("prompt is empty")
	}

	cctx := context.Background()
	a, err := openApp(cctx, cli, appParams{Conversation: true})
	if err != nil {
		return err
	}
	defer a.Close()

	conv, err := a.NewChat(cctx)
	if err != nil {
		return err
	}
	reply, err := conv.Send(cctx, text)
	if err != nil {
		return err
	}

	switch p.Output {
	case "json":
		enc := json.NewEncoder(ctx.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			ChatID   string `json:"chat_id"`
			Messages any    `json:"messages"`
		}{a.ChatID(), conv.Messages()})
	default:
		fmt.Fprintln(ctx.Stdout, reply.Content)
		return nil
	}
}
