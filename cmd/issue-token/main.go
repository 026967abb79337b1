// Command issue-token signs a bearer token for local development using the
// JWT_SECRET, JWT_ISSUER and JWT_AUDIENCE of the environment.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sebuszqo/BillPlatform/internal/auth"
	"github.com/sebuszqo/BillPlatform/internal/config"
	"github.com/sebuszqo/BillPlatform/internal/logging"
)

func main() {
	subject := flag.String("subject", "dev", "token subject")
	role := flag.String("role", auth.RoleIndUser, "role claim (IndUser or Admin)")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := validate(cfg, *role, *ttl); err != nil {
		slog.Error("Cannot issue token", "error", err)
		os.Exit(1)
	}

	token, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience).GenerateAccessJWT(*subject, *role, *ttl)
	if err != nil {
		slog.Error("Failed to sign token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func validate(cfg *config.Config, role string, ttl time.Duration) error {
	var errs []error
	if cfg.JWTSecret == "" || cfg.JWTIssuer == "" || cfg.JWTAudience == "" {
		errs = append(errs, errors.New("JWT_SECRET, JWT_ISSUER and JWT_AUDIENCE must be set"))
	}
	if role != auth.RoleIndUser && role != auth.RoleAdmin {
		errs = append(errs, fmt.Errorf("unknown role %q", role))
	}
	if ttl <= 0 {
		errs = append(errs, errors.New("ttl must be positive"))
	}
	return errors.Join(errs...)
}
