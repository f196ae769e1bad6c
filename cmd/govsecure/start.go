package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/govsecure/platform/src/assistant"
	"github.com/govsecure/platform/src/auth"
	"github.com/govsecure/platform/src/compliance"
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the interactive console",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, client := bootstrap()
			defer log.Sync()

			sessions := auth.NewManager(cfg, log)
			session, err := login(sessions)
			if err != nil {
				return err
			}
			fmt.Printf("Welcome, %s (clearance: %s)\n\n", session.Username, session.Clearance)

			asst := assistant.New(cfg, client, log)
			scanner := compliance.NewScanner(cfg, log)
			return console(cmd.Context(), asst, scanner, sessions)
		},
	}
}

// login resolves a session, prompting for credentials when no bypass
// or existing session applies.
func login(sessions *auth.Manager) (auth.Session, error) {
	if s, err := sessions.Authenticate("", ""); err == nil {
		return s, nil
	}

	in := bufio.NewReader(os.Stdin)
	for attempts := 0; attempts < 3; attempts++ {
		fmt.Print("Username: ")
		username, _ := in.ReadString('\n')
		fmt.Print("Password: ")
		password, _ := in.ReadString('\n')

		s, err := sessions.Authenticate(strings.TrimSpace(username), strings.TrimSpace(password))
		if err == nil {
			return s, nil
		}
		fmt.Println("Authentication failed, try again.")
	}
	return auth.Session{}, fmt.Errorf("authentication failed after 3 attempts")
}

func console(ctx context.Context, asst *assistant.Assistant, scanner *compliance.Scanner, sessions *auth.Manager) error {
	fmt.Println("GovSecure interactive console. Commands: /mode <name>, /modes, /scan, /fullscan, /report, /status, /clear, /logout, /quit")
	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !in.Scan() {
			return in.Err()
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit" || line == "/exit":
			fmt.Println("Goodbye.")
			return nil
		case line == "/modes":
			for _, m := range assistant.Modes() {
				fmt.Println(" -", m)
			}
		case strings.HasPrefix(line, "/mode "):
			name := strings.TrimSpace(strings.TrimPrefix(line, "/mode "))
			if err := asst.SetModeName(name); err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Println("Mode set to", name)
		case line == "/scan":
			result, err := scanner.QuickScan(ctx)
			if err != nil {
				fmt.Println("Scan aborted:", err)
				continue
			}
			printScanSummary(result)
		case line == "/fullscan":
			result, err := scanner.RunFullScan(ctx)
			if err != nil {
				fmt.Println("Scan aborted:", err)
				continue
			}
			printScanSummary(result)
		case line == "/report":
			report, err := scanner.GenerateComplianceReport("", "")
			if err != nil {
				fmt.Println("Report unavailable:", err)
				continue
			}
			fmt.Println(report.ExecutiveSummary)
			for sev, n := range report.FindingsBySev {
				fmt.Printf("  %s: %d\n", sev, n)
			}
		case line == "/logout":
			if err := sessions.Logout(); err != nil {
				fmt.Println("Logout failed:", err)
				continue
			}
			fmt.Println("Logged out. Goodbye.")
			return nil
		case line == "/status":
			status := asst.SystemStatus()
			fmt.Printf("Mode: %s | Provider available: %v | Model: %s | History: %d turns\n",
				status.CurrentMode, status.ProviderAvailable, status.Model, status.ConversationLength)
		case line == "/clear":
			asst.ClearHistory()
			fmt.Println("History cleared.")
		default:
			fmt.Println(asst.Chat(ctx, line))
		}
		fmt.Println()
	}
}

func printScanSummary(r compliance.ScanResult) {
	fmt.Printf("Scan %s (%s): score %.1f%%, %d/%d controls passed\n",
		r.ScanID, r.ScanType, r.OverallScore, r.PassedChecks, r.TotalChecks)
	for _, f := range r.Findings {
		fmt.Printf("  [%s] %s: %s\n", strings.ToUpper(f.RiskLevel), f.ControlID, f.Finding)
	}
}
