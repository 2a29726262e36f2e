// Package relay implements the agent that runs next to the meet program. It
// pulls race files the service has generated, writes them into the meet
// program's directory and acknowledges the ones it wrote.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/mcfadden20/Swim-meet-timer/internal/apiclient"
	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
	"github.com/mcfadden20/Swim-meet-timer/internal/utils"
)

var (
	ErrNoCredentialSource = errors.New("no credential source available")
	ErrNoWatchDir         = errors.New("no watch directory")
	ErrInvalidFilename    = errors.New("not a race file name")
)

// Client is the part of the service API the agent uses.
type Client interface {
	VerifyAuth(ctx context.Context, accessCode, adminPIN string) (*apiclient.VerifyAuthResponse, error)
	PendingFiles(ctx context.Context, accessCode, adminPIN string) ([]domain.PendingFile, error)
	Receipt(ctx context.Context, accessCode, adminPIN string, filenames []string) (int, error)
}

// TickResult summarises one poll.
type TickResult struct {
	Pending      int
	Written      []string
	Failed       int
	Acknowledged int
}

// Agent drives the relay lifecycle from a single goroutine.
type Agent struct {
	client     Client
	initial    CredentialSource
	prompt     CredentialSource
	usePrompt  bool
	interval   time.Duration
	dir        string
	resolveDir func(ctx context.Context) (string, error)
	wait       func(ctx context.Context, d time.Duration) error
	onState    func(from, to State)

	mu    sync.Mutex
	state State
	creds Credentials
	meet  *apiclient.VerifyAuthResponse
}

// Option configures an Agent
type Option func(*Agent)

// WithPrompt sets the source used when no initial credentials are configured
// and after every rejection.
func WithPrompt(src CredentialSource) Option {
	return func(a *Agent) { a.prompt = src }
}

// WithInterval sets the poll interval.
func WithInterval(d time.Duration) Option {
	return func(a *Agent) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithWatchDir fixes the output directory up front.
func WithWatchDir(dir string) Option {
	return func(a *Agent) { a.dir = dir }
}

// WithDirResolver sets how the directory is chosen once credentials verify.
func WithDirResolver(fn func(ctx context.Context) (string, error)) Option {
	return func(a *Agent) { a.resolveDir = fn }
}

// WithStateObserver is called on every transition.
func WithStateObserver(fn func(from, to State)) Option {
	return func(a *Agent) { a.onState = fn }
}

func withWait(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(a *Agent) { a.wait = fn }
}

// NewAgent creates an agent. initial may be nil, in which case the prompt is
// asked straight away.
func NewAgent(client Client, initial CredentialSource, opts ...Option) *Agent {
	a := &Agent{
		client:   client,
		initial:  initial,
		interval: DefaultPollInterval,
		wait:     sleep,
		state:    StateAwaitingCredentials,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns the current lifecycle state.
func (a *Agent) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Dir returns the directory files are written to, once chosen.
func (a *Agent) Dir() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dir
}

func (a *Agent) transition(ctx context.Context, to State) {
	a.mu.Lock()
	from := a.state
	a.state = to
	a.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgStateChanged, LogKeyFrom, from.String(), LogKeyTo, to.String())
	if a.onState != nil {
		a.onState(from, to)
	}
}

// Run drives the agent until ctx is cancelled, returning nil in that case.
// A tick in progress finishes before cancellation is observed.
func (a *Agent) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for {
		if ctx.Err() != nil {
			return nil
		}

		switch a.State() {
		case StateAwaitingCredentials:
			src := a.initial
			if a.usePrompt || src == nil {
				src = a.prompt
			}
			if src == nil {
				return ErrNoCredentialSource
			}
			a.usePrompt = true

			creds, err := src.Credentials(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf(ErrContextReadCredentials, err)
			}
			if !creds.Complete() {
				log.Warn(LogMsgCredentialsMissing)
				continue
			}
			a.creds = creds
			a.transition(ctx, StateVerifying)

		case StateVerifying:
			meet, err := a.client.VerifyAuth(ctx, a.creds.AccessCode, a.creds.AdminPIN)
			switch {
			case err == nil:
				a.mu.Lock()
				a.meet = meet
				a.mu.Unlock()
				log.Info(LogMsgVerified, LogKeyMeetID, meet.MeetID, LogKeyMeetName, meet.MeetName)
				a.transition(ctx, StateVerified)
			case ctx.Err() != nil:
				return nil
			case errors.Is(err, domain.ErrUnauthorized), apiclient.IsRejected(err):
				log.Warn(LogMsgRejected, LogKeyError, err)
				a.transition(ctx, StateRejected)
			default:
				log.Warn(LogMsgServerUnreachable, LogKeyError, err, LogKeyInterval, a.interval)
				if a.wait(ctx, a.interval) != nil {
					return nil
				}
			}

		case StateRejected:
			a.creds = Credentials{}
			a.transition(ctx, StateAwaitingCredentials)

		case StateVerified:
			if a.Dir() == "" && a.resolveDir != nil {
				dir, err := a.resolveDir(ctx)
				if err != nil {
					return fmt.Errorf(ErrContextResolveDir, err)
				}
				a.mu.Lock()
				a.dir = dir
				a.mu.Unlock()
			}
			if a.Dir() == "" {
				return ErrNoWatchDir
			}
			log.Info(LogMsgSyncActive, LogKeyDir, a.Dir(), LogKeyInterval, a.interval)
			a.transition(ctx, StatePollLoop)

		case StatePollLoop:
			_, _ = a.Tick(context.WithoutCancel(ctx))
			if a.wait(ctx, a.interval) != nil {
				return nil
			}
		}
	}
}

// Tick fetches pending files, writes each one and acknowledges those written.
// A failed write skips that file; the rest of the batch continues.
func (a *Agent) Tick(ctx context.Context) (TickResult, error) {
	log := logger.FromContext(ctx)
	var res TickResult

	files, err := a.client.PendingFiles(ctx, a.creds.AccessCode, a.creds.AdminPIN)
	if err != nil {
		log.Warn(LogMsgPendingFailed, LogKeyError, err)
		return res, err
	}
	res.Pending = len(files)
	if len(files) == 0 {
		log.Info(LogMsgNothingPending)
		return res, nil
	}

	dir := a.Dir()
	for _, f := range files {
		if err := writeRaceFile(dir, f); err != nil {
			res.Failed++
			log.Error(LogMsgFileWriteFailed, LogKeyFilename, f.Filename, LogKeyError, err)
			continue
		}
		res.Written = append(res.Written, f.Filename)
		log.Info(LogMsgFileWritten, LogKeyFilename, f.Filename)
	}

	if len(res.Written) == 0 {
		return res, nil
	}

	n, err := a.client.Receipt(ctx, a.creds.AccessCode, a.creds.AdminPIN, res.Written)
	if err != nil {
		log.Warn(LogMsgReceiptFailed, LogKeyCount, len(res.Written), LogKeyError, err)
		return res, err
	}
	res.Acknowledged = n
	log.Info(LogMsgReceiptSent, LogKeyCount, n)
	return res, nil
}

// writeRaceFile writes f under its own name, formatted the way the service
// formats race files.
func writeRaceFile(dir string, f domain.PendingFile) error {
	if _, ok := domain.ParseRaceFilename(f.Filename); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, f.Filename)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, f.Content, "", jsonIndent); err != nil {
		return fmt.Errorf(ErrContextIndentContent, f.Filename, err)
	}
	buf.WriteByte('\n')

	if err := utils.WriteFileAtomic(filepath.Join(dir, f.Filename), buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf(ErrContextWriteFile, f.Filename, err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
