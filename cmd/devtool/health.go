package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultServiceURL = "http://localhost:3000"
	slowResponse      = time.Second
)

var healthPaths = []string{"/healthz", "/readyz", "/version"}

type HealthCheckCommand struct {
	client *http.Client
}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check liveness, readiness and version of a running service"
}

func (c *HealthCheckCommand) Run(args []string) error {
	base := defaultServiceURL
	if len(args) > 0 {
		base = strings.TrimRight(args[0], "/")
	}
	client := c.client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", base))

	for _, path := range healthPaths {
		start := time.Now()
		body, err := get(client, base+path)
		if err != nil {
			PrintError("%s: %v", path, err)
			return err
		}
		duration := time.Since(start)

		if duration > slowResponse {
			PrintWarning("%s: slow response time (%v)", path, duration)
		} else {
			PrintSuccess("%s %s (%v)", path, body, duration)
		}
	}
	return nil
}

func get(client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return strings.TrimSpace(string(data)), nil
}
