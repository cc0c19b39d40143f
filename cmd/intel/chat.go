package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the local chat bot",
		Long: `Start an interactive session with the local chat bot. The conversation is
appended to the history file and restored on the next start.

Type /reset to clear the memory, exit or quit to leave.`,
		Args: cobra.NoArgs,
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	bot, err := newChatBot(ctx, cfg)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen, color.Bold)

	cyan.Println("🤖 Local chat bot")
	fmt.Println(color.HiBlackString("Type /reset to clear memory, exit to quit."))
	for _, m := range bot.Messages() {
		fmt.Printf("%s: %s\n", m.Role, m.Content)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		green.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "/reset":
			if err := bot.Reset(); err != nil {
				color.Red("reset failed: %v", err)
				continue
			}
			color.Yellow("Memory cleared.")
			continue
		}

		reply, err := bot.Send(ctx, input)
		if err != nil {
			color.Red("Error: %v", err)
			continue
		}
		cyan.Print("Bot: ")
		fmt.Println(reply)
	}
	return scanner.Err()
}
