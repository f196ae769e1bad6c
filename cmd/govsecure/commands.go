package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/govsecure/platform/src/api/webserver"
	"github.com/govsecure/platform/src/assistant"
	"github.com/govsecure/platform/src/auth"
	"github.com/govsecure/platform/src/compliance"
	"github.com/govsecure/platform/src/reasoning"
)

func newChatCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send one message to the assistant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, client := bootstrap()
			defer log.Sync()

			asst := assistant.New(cfg, client, log)
			if mode != "" {
				if err := asst.SetModeName(mode); err != nil {
					return err
				}
			}
			fmt.Println(asst.Chat(cmd.Context(), args[0]))
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "assistant mode (default general)")
	return cmd
}

func newScanCmd() *cobra.Command {
	var full bool
	var export string
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a compliance scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, _ := bootstrap()
			defer log.Sync()

			scanner := compliance.NewScanner(cfg, log)
			var (
				result compliance.ScanResult
				err    error
			)
			if full {
				result, err = scanner.RunFullScan(cmd.Context())
			} else {
				result, err = scanner.QuickScan(cmd.Context())
			}
			if err != nil {
				return err
			}
			printScanSummary(result)

			if export != "" {
				path, err := scanner.ExportScanResults(result.ScanID, export)
				if err != nil {
					return err
				}
				fmt.Println("Exported to", path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "run the comprehensive scan instead of the quick scan")
	cmd.Flags().StringVar(&export, "export", "", "export results in the given format (json)")
	return cmd
}

func newWebCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "web",
		Short: "Run the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, client := bootstrap()
			defer log.Sync()

			deps := webserver.Deps{
				Assistant: assistant.New(cfg, client, log),
				Agent:     compliance.NewAgent(cfg, client, log),
				Scanner:   compliance.NewScanner(cfg, log),
				Reasoner:  reasoning.New(cfg, client, log),
				Sessions:  auth.NewManager(cfg, log),
				Log:       log,
			}
			router := webserver.New(cfg, deps)

			httpSrv := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      router,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			go func() {
				log.Info("api server listening",
					zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
				if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			log.Info("shutting down")
			shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutCtx)
		},
	}
}
