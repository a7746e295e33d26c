package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"resale-radar/internal/api"
	"resale-radar/internal/config"
	"resale-radar/internal/db"
	"resale-radar/internal/engine"
	"resale-radar/internal/logger"
	"resale-radar/internal/schedule"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API for the host UI",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 13380, "HTTP server port")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Banner(version)

	database, err := db.Open()
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		return err
	}
	defer database.Close()

	cfg := database.LoadConfig()

	sched, source, err := resolveSchedule(cfg, database)
	if err != nil {
		// A structurally invalid schedule refuses to serve; silent
		// defaults here would misinform buy/skip decisions.
		logger.Error("Schedule", err.Error())
		return err
	}
	logger.Info("Schedule", fmt.Sprintf("Using %s schedule version %s", source, sched.Version))

	calc, err := engine.NewCalculator(sched)
	if err != nil {
		logger.Error("Engine", err.Error())
		return err
	}

	srv := api.NewServer(cfg, calc, database)
	addr := fmt.Sprintf("127.0.0.1:%d", servePort)
	logger.Server(addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		logger.Error("Server", fmt.Sprintf("Failed: %v", err))
		return err
	}
	return nil
}

// resolveSchedule picks the active schedule: the configured file wins, then
// the last stored copy, then the embedded default.
func resolveSchedule(cfg *config.Config, database *db.DB) (*schedule.Config, string, error) {
	if cfg.SchedulePath != "" {
		sched, err := schedule.LoadFile(cfg.SchedulePath)
		if err != nil {
			return nil, "", err
		}
		if payload, err := json.Marshal(sched); err == nil {
			if err := database.SaveSchedule(sched.Version, payload); err != nil {
				logger.Warn("Schedule", fmt.Sprintf("Could not store schedule: %v", err))
			}
		}
		return sched, "file", nil
	}

	if payload, _, ok, err := database.LatestSchedule(); err == nil && ok {
		sched, err := schedule.Load(payload)
		if err == nil {
			return sched, "stored", nil
		}
		logger.Warn("Schedule", fmt.Sprintf("Stored schedule unusable, using default: %v", err))
	}

	return schedule.Default(), "default", nil
}
