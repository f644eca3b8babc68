package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Manage game rooms and play moves",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomListCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomSpectateCmd())
	cmd.AddCommand(newRoomLeaveCmd())
	cmd.AddCommand(newRoomPlayCmd())
	cmd.AddCommand(newRoomPassCmd())
	cmd.AddCommand(newRoomExchangeCmd())
	cmd.AddCommand(newRoomBotCmd())
	cmd.AddCommand(newRoomHistoryCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var maxPlayers int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new room",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			req := map[string]int{"max_players": maxPlayers}
			if err := client.Post("/api/v1/rooms", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxPlayers, "max-players", 2, "Maximum number of players (2-4)")

	return cmd
}

func newRoomListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rooms open for joining",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []RoomListing
			if err := client.Get("/api/v1/rooms", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <room-id>",
		Short: "Show a room's current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			if err := client.Get("/api/v1/rooms/"+roomIDArg(args), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <room-id>",
		Short: "Join a room as a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			if err := client.Post("/api/v1/rooms/"+roomIDArg(args)+"/join", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomSpectateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spectate <room-id>",
		Short: "Join a room as a spectator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			if err := client.Post("/api/v1/rooms/"+roomIDArg(args)+"/spectate", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <room-id>",
		Short: "Leave a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/rooms/"+roomIDArg(args)+"/leave", nil, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Left room " + roomIDArg(args))
			return nil
		},
	}
}

func newRoomPlayCmd() *cobra.Command {
	var tiles []string

	cmd := &cobra.Command{
		Use:   "play <room-id>",
		Short: "Place tiles on the board",
		Long: `Place tiles on the board. Each tile is given as --tile ROW,COL,LETTER
with an optional fourth field "blank" to play a blank tile as that letter:

  lexroom room play ABC123 --tile 7,7,H --tile 7,8,I
  lexroom room play ABC123 --tile 7,9,S,blank`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(tiles) == 0 {
				return fmt.Errorf("at least one --tile is required")
			}

			placements := make([]map[string]any, 0, len(tiles))
			for _, spec := range tiles {
				p, err := parseTileSpec(spec)
				if err != nil {
					return err
				}
				placements = append(placements, p)
			}

			var result MoveResult
			req := map[string]any{"placements": placements}
			if err := client.Post("/api/v1/rooms/"+roomIDArg(args)+"/moves", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&tiles, "tile", nil, "Tile placement as ROW,COL,LETTER[,blank] (repeatable)")

	return cmd
}

func newRoomPassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pass <room-id>",
		Short: "Pass the current turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			if err := client.Post("/api/v1/rooms/"+roomIDArg(args)+"/pass", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomExchangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exchange <room-id> <letters>",
		Short: "Exchange rack tiles with the bag",
		Long: `Exchange rack tiles with the bag. Letters are given as a single
string, using * for a blank tile:

  lexroom room exchange ABC123 QZ*`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			req := map[string]string{"letters": strings.ToUpper(args[1])}
			if err := client.Post("/api/v1/rooms/"+roomIDArg(args)+"/exchange", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomBotCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "bot <room-id>",
		Short: "Add a bot player to a room you host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			req := map[string]string{"strategy": strategy}
			if err := client.Post("/api/v1/rooms/"+roomIDArg(args)+"/bots", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "greedy", "Bot strategy")

	return cmd
}

func newRoomHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <room-id>",
		Short: "Show a room's move history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []MoveRecord
			if err := client.Get("/api/v1/rooms/"+roomIDArg(args)+"/moves", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func roomIDArg(args []string) string {
	return strings.ToUpper(args[0])
}

func parseTileSpec(spec string) (map[string]any, error) {
	parts := strings.Split(spec, ",")
	if len(parts) < 3 || len(parts) > 4 {
		return nil, fmt.Errorf("invalid tile %q: expected ROW,COL,LETTER[,blank]", spec)
	}

	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid tile %q: bad row: %w", spec, err)
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid tile %q: bad column: %w", spec, err)
	}

	letter := strings.ToUpper(strings.TrimSpace(parts[2]))
	if len([]rune(letter)) != 1 {
		return nil, fmt.Errorf("invalid tile %q: letter must be a single character", spec)
	}

	placement := map[string]any{
		"row":    row,
		"col":    col,
		"letter": letter,
	}

	if len(parts) == 4 {
		if !strings.EqualFold(parts[3], "blank") {
			return nil, fmt.Errorf("invalid tile %q: fourth field must be \"blank\"", spec)
		}
		placement["is_blank"] = true
	}

	return placement, nil
}
