package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/healthai/internal/chat"
	"github.com/user/healthai/internal/render"
)

func init() {
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the AI health assistant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.admit(); err != nil {
			return err
		}

		ctx := context.Background()
		ctl := chat.New(a.client)
		defer ctl.Close()
		ctl.Initialize(ctx)

		fmt.Printf("Chat session %s. Type a message, or /quit to exit.\n", ctl.SessionID())
		for _, ex := range ctl.Exchanges() {
			fmt.Printf("\nyou> %s\nai> %s\n", ex.Message, render.Response(ex.Response))
		}

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("\nyou> ")
			if !scanner.Scan() {
				return nil
			}
			text := strings.TrimSpace(scanner.Text())
			if text == "/quit" || text == "/exit" {
				return nil
			}

			ex, err := ctl.Send(ctx, text)
			if err != nil {
				if errors.Is(err, chat.ErrEmpty) {
					continue
				}
				if err := a.surface(err); err != nil {
					fmt.Fprintln(os.Stderr, "Error:", err)
				}
				continue
			}
			fmt.Printf("ai> %s\n", render.Response(ex.Response))
		}
	},
}
