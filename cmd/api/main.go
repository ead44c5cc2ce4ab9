package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"socialnet/cmd/app"
	"socialnet/internal/config"
	"socialnet/internal/database"
)

const (
	portFlag       = "port"
	migrationsFlag = "migrations"
)

var serveFlags = map[string]cobraflags.Flag{
	portFlag: &cobraflags.StringFlag{
		Name:  portFlag,
		Value: "",
		Usage: "HTTP port, overrides SERVER_PORT",
	},
	migrationsFlag: &cobraflags.StringFlag{
		Name:  migrationsFlag,
		Value: "",
		Usage: "Path to the SQL schema file, overrides MIGRATIONS_PATH",
	},
}

var migrateFlags = map[string]cobraflags.Flag{
	migrationsFlag: &cobraflags.StringFlag{
		Name:  migrationsFlag,
		Value: "",
		Usage: "Path to the SQL schema file, overrides MIGRATIONS_PATH",
	},
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "socialnet",
		Short: "Social network REST API",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  serve,
	}
	cobraflags.RegisterMap(serveCmd, serveFlags)

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE:  migrate,
	}
	cobraflags.RegisterMap(migrateCmd, migrateFlags)

	rootCmd.AddCommand(serveCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig(flags map[string]cobraflags.Flag) (*config.Config, error) {
	cfg := config.LoadConfig()

	if flag, ok := flags[portFlag]; ok {
		if value := flag.GetString(); value != "" {
			port, err := strconv.Atoi(value)
			if err != nil || port < 1 || port > 65535 {
				return nil, fmt.Errorf("неверный порт: %s", value)
			}
			cfg.ServerPort = port
		}
	}

	if value := flags[migrationsFlag].GetString(); value != "" {
		cfg.MigrationsPath = value
	}

	return cfg, nil
}

func serve(_ *cobra.Command, _ []string) error {
	// setting up config
	cfg, err := loadConfig(serveFlags)
	if err != nil {
		return err
	}

	if cfg.JWTSecretKey == "" {
		return errors.New("JWT_SECRET_KEY не установлен")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.App(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           application.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Сервер запущен на %s", server.Addr)
		log.Printf("База данных: %s", cfg.DB.DbNAME)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка запуска сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Останавливаем сервер...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}

	log.Println("Сервер остановлен")
	return nil
}

func migrate(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(migrateFlags)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	return db.RunMigrations(cfg.MigrationsPath)
}
