package relay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Credentials is a meet's access code and admin PIN.
type Credentials struct {
	AccessCode string
	AdminPIN   string
}

// Complete reports whether both values are present.
func (c Credentials) Complete() bool {
	return c.AccessCode != "" && c.AdminPIN != ""
}

// CredentialSource supplies credentials to the agent.
type CredentialSource interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// StaticCredentials is a fixed credential pair, typically from config.
type StaticCredentials Credentials

func (s StaticCredentials) Credentials(context.Context) (Credentials, error) {
	return Credentials(s), nil
}

// Prompter asks the operator questions on a terminal.
type Prompter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading answers from in.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints label and returns the trimmed answer. The read itself does not
// observe ctx; a closed input returns io.EOF.
func (p *Prompter) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Credentials asks for the meet code and then the admin PIN.
func (p *Prompter) Credentials(ctx context.Context) (Credentials, error) {
	code, err := p.Ask(ctx, "Enter the meet code: ")
	if err != nil {
		return Credentials{}, err
	}
	pin, err := p.Ask(ctx, "Enter the admin PIN: ")
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{AccessCode: code, AdminPIN: pin}, nil
}
