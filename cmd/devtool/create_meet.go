package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mcfadden20/Swim-meet-timer/internal/config"
)

const (
	accessCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	accessCodeLength   = 6
	adminPINLength     = 4
)

// CreateMeetCommand inserts a meet for local testing. Meets are normally
// issued by the meet administration system.
type CreateMeetCommand struct {
	// random is swapped in tests
	random func(alphabet string, n int) (string, error)
}

func (c *CreateMeetCommand) Name() string {
	return "create-meet"
}

func (c *CreateMeetCommand) Description() string {
	return "Create a meet with a fresh access code and admin PIN (dev only)"
}

func (c *CreateMeetCommand) Run(args []string) error {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		return errors.New("meet name required")
	}
	name := strings.TrimSpace(strings.Join(args, " "))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.IsDevelopment() {
		return fmt.Errorf("create-meet is only available in development (ENVIRONMENT=%s)", cfg.Environment)
	}

	code, pin, err := c.credentials()
	if err != nil {
		return err
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.GetDBConnString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	var id int64
	err = conn.QueryRow(ctx,
		`INSERT INTO meets (name, access_code, admin_pin) VALUES ($1, $2, $3) RETURNING id`,
		name, code, pin).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to insert meet: %w", err)
	}

	PrintSuccess("Created meet %d %q", id, name)
	PrintInfo("Access code: %s", code)
	PrintInfo("Admin PIN:   %s", pin)
	return nil
}

func (c *CreateMeetCommand) credentials() (string, string, error) {
	random := c.random
	if random == nil {
		random = randomString
	}
	code, err := random(accessCodeAlphabet, accessCodeLength)
	if err != nil {
		return "", "", err
	}
	pin, err := random("0123456789", adminPINLength)
	if err != nil {
		return "", "", err
	}
	return code, pin, nil
}

func randomString(alphabet string, n int) (string, error) {
	var b strings.Builder
	limit := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[idx.Int64()])
	}
	return b.String(), nil
}
