package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events <room-id>",
		Short: "Stream a room's live events",
		Long: `Stream a room's live events over SSE. While the stream is open you
count as connected in the room. Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(roomIDArg(args))
		},
	}
}

func streamEvents(roomID string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	streamURL := fmt.Sprintf("%s/api/v1/rooms/%s/events?token=%s",
		strings.TrimSuffix(cfg.ServerURL, "/"), roomID, url.QueryEscape(cfg.Token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	// No client timeout: the stream stays open until interrupted
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream failed: HTTP %d", resp.StatusCode)
	}

	fmt.Fprintf(os.Stderr, "Streaming events for room %s (Ctrl+C to stop)\n", roomID)

	scanner := bufio.NewScanner(resp.Body)
	var eventType string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			eventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			printEvent(eventType, data)
		case line == "":
			eventType = ""
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream closed: %w", err)
	}

	return nil
}

func printEvent(eventType, data string) {
	if cfg.Output == "json" {
		fmt.Println(data)
		return
	}
	if eventType == "" {
		eventType = "message"
	}
	fmt.Printf("[%s] %s\n", eventType, data)
}
