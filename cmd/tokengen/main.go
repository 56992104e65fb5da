// Command tokengen mints a bearer token for the API, signed with the
// configured JWT_SECRET and JWT_ISSUER. The server issues no tokens itself.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/amortization_manager/internal/platform/config"
	"github.com/SscSPs/amortization_manager/internal/utils"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := run(os.Args[1:], cfg, os.Stdout); err != nil {
		slog.Error("Failed to mint token", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(args []string, cfg *config.Config, out io.Writer) error {
	flags := pflag.NewFlagSet("tokengen", pflag.ContinueOnError)
	userID := flags.StringP("user", "u", "", "subject (user id) of the token")
	ttl := flags.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *userID == "" {
		return errors.New("--user is required")
	}
	if *ttl <= 0 {
		return fmt.Errorf("--ttl must be positive, got %s", *ttl)
	}

	token, err := utils.GenerateJWT(*userID, cfg.JWTSecret, *ttl, cfg.JWTIssuer)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
