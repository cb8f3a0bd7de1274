package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ttc24/2048-Duel/internal/config"
	"github.com/ttc24/2048-Duel/internal/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeLevel  int
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and watch the engine play.

Each SSH connection gets its own game with a fresh seed. Finished
games are saved to the shared runs database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.2048duel/host_key

Examples:
  duel serve                           # Listen on :23234 with auto-generated key
  duel serve --ssh :2222               # Listen on port 2222
  duel serve --level 10                # Serve the strongest tier
  duel serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagServeLevel, "level", 5, "Difficulty level served to sessions (1-10)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	tiers, err := config.LoadTiers(flagTiersPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tier table: %v\n", err)
		os.Exit(1)
	}

	if flagServeLevel < 1 || flagServeLevel > len(tiers) {
		fmt.Fprintf(os.Stderr, "Error: level must be between 1 and %d\n", len(tiers))
		os.Exit(1)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		Level:       flagServeLevel,
		Tiers:       tiers,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
