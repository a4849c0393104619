// Package chat implements the interactive journaling session on the
// terminal.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/starford/laguz/internal/journalservice"
)

// Run drives one journaling conversation on stdin/stdout. It greets,
// relays turns to the assistant until an end signal, then writes the
// daily note and prints where it landed.
func Run(ctx context.Context, svc *journalservice.Service) error {
	rl, err := readline.New("You> ")
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	defer rl.Close()

	greeting := svc.StartConversation()
	fmt.Printf("\nBuddy> %s\n\n", greeting)

	for {
		line, err := rl.Readline()
		if err != nil {
			// Ctrl+C or Ctrl+D abandons the session without writing.
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				fmt.Println("\nBye! Nothing was written.")
				return nil
			}
			return fmt.Errorf("chat: %w", err)
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		result, err := svc.Turn(ctx, input)
		if err != nil {
			return fmt.Errorf("chat: %w", err)
		}
		fmt.Printf("\nBuddy> %s\n\n", result.Reply)
		if result.Ended {
			break
		}
	}

	written, err := svc.FinishEntry(ctx)
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	fmt.Printf("Journal entry saved to %s\n", written.Path)
	return nil
}
