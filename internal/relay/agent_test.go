package relay

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mcfadden20/Swim-meet-timer/internal/apiclient"
	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
)

const (
	testCode = "SWIM42"
	testPIN  = "1234"
)

func raceContent(race int) json.RawMessage {
	return json.RawMessage(`{"raceNumber":` + string(rune('0'+race)) + `,"lanes":[{"lane":1,"timer1":"00:00:31.250"}]}`)
}

// cancelOnWait stops Run the first time the agent would sleep in the given state.
func cancelOnWait(a **Agent, cancel context.CancelFunc, in State, waits *int) func(context.Context, time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		*waits++
		if (*a).State() == in {
			cancel()
			return context.Canceled
		}
		return nil
	}
}

func TestRun_VerifiesThenPolls(t *testing.T) {
	dir := t.TempDir()
	client := new(MockClient)
	client.On("VerifyAuth", mock.Anything, testCode, testPIN).
		Return(&apiclient.VerifyAuthResponse{MeetID: 3, MeetName: "Spring"}, nil).Once()
	client.On("PendingFiles", mock.Anything, testCode, testPIN).
		Return([]domain.PendingFile{{Filename: "session_1_event_2_heat_1_race_1.json", Content: raceContent(1)}}, nil).Once()
	client.On("Receipt", mock.Anything, testCode, testPIN, []string{"session_1_event_2_heat_1_race_1.json"}).
		Return(1, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var states []State
	var waits int
	var agent *Agent
	agent = NewAgent(client, StaticCredentials{AccessCode: testCode, AdminPIN: testPIN},
		WithInterval(time.Minute),
		WithDirResolver(func(context.Context) (string, error) { return dir, nil }),
		WithStateObserver(func(_, to State) { states = append(states, to) }),
	)
	agent.wait = cancelOnWait(&agent, cancel, StatePollLoop, &waits)

	require.NoError(t, agent.Run(ctx))

	assert.Equal(t, []State{StateVerifying, StateVerified, StatePollLoop}, states)
	assert.Equal(t, dir, agent.Dir())
	assert.Equal(t, 1, waits)
	assert.FileExists(t, filepath.Join(dir, "session_1_event_2_heat_1_race_1.json"))
	client.AssertExpectations(t)
}

func TestRun_RejectedFallsBackToPrompt(t *testing.T) {
	client := new(MockClient)
	client.On("VerifyAuth", mock.Anything, testCode, "0000").
		Return(nil, &apiclient.StatusError{StatusCode: 401}).Once()
	client.On("VerifyAuth", mock.Anything, testCode, testPIN).
		Return(&apiclient.VerifyAuthResponse{MeetID: 3}, nil).Once()
	client.On("PendingFiles", mock.Anything, testCode, testPIN).Return([]domain.PendingFile{}, nil)

	prompt := &queuedCredentials{pairs: []Credentials{
		{AccessCode: testCode},
		{AccessCode: testCode, AdminPIN: testPIN},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var states []State
	var waits int
	var agent *Agent
	agent = NewAgent(client, StaticCredentials{AccessCode: testCode, AdminPIN: "0000"},
		WithPrompt(prompt),
		WithWatchDir(t.TempDir()),
		WithStateObserver(func(_, to State) { states = append(states, to) }),
	)
	agent.wait = cancelOnWait(&agent, cancel, StatePollLoop, &waits)

	require.NoError(t, agent.Run(ctx))

	assert.Equal(t, []State{
		StateVerifying, StateRejected, StateAwaitingCredentials,
		StateVerifying, StateVerified, StatePollLoop,
	}, states)
	assert.Equal(t, 2, prompt.calls, "incomplete answer asks again")
	client.AssertExpectations(t)
}

func TestRun_NetworkErrorStaysVerifying(t *testing.T) {
	client := new(MockClient)
	client.On("VerifyAuth", mock.Anything, testCode, testPIN).
		Return(nil, domain.ErrUnavailable).Twice()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var states []State
	waits := 0
	agent := NewAgent(client, StaticCredentials{AccessCode: testCode, AdminPIN: testPIN},
		WithStateObserver(func(_, to State) { states = append(states, to) }),
		withWait(func(context.Context, time.Duration) error {
			waits++
			if waits == 2 {
				cancel()
				return context.Canceled
			}
			return nil
		}),
	)

	require.NoError(t, agent.Run(ctx))
	assert.Equal(t, []State{StateVerifying}, states)
	assert.Equal(t, StateVerifying, agent.State())
	client.AssertExpectations(t)
}

func TestRun_ThrottledVerifyKeepsCredentials(t *testing.T) {
	client := new(MockClient)
	client.On("VerifyAuth", mock.Anything, testCode, testPIN).
		Return(nil, &apiclient.StatusError{StatusCode: 429}).Once()
	client.On("VerifyAuth", mock.Anything, testCode, testPIN).
		Return(&apiclient.VerifyAuthResponse{MeetID: 3}, nil).Once()
	client.On("PendingFiles", mock.Anything, testCode, testPIN).Return([]domain.PendingFile{}, nil)

	prompt := &queuedCredentials{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var states []State
	var waits int
	var agent *Agent
	agent = NewAgent(client, StaticCredentials{AccessCode: testCode, AdminPIN: testPIN},
		WithPrompt(prompt),
		WithWatchDir(t.TempDir()),
		WithStateObserver(func(_, to State) { states = append(states, to) }),
	)
	agent.wait = cancelOnWait(&agent, cancel, StatePollLoop, &waits)

	require.NoError(t, agent.Run(ctx))

	assert.Equal(t, []State{StateVerifying, StateVerified, StatePollLoop}, states)
	assert.Zero(t, prompt.calls, "a throttled handshake is retried, not re-prompted")
	assert.Equal(t, 2, waits)
	client.AssertExpectations(t)
}

func TestRun_NoCredentialSource(t *testing.T) {
	agent := NewAgent(new(MockClient), nil)
	assert.ErrorIs(t, agent.Run(context.Background()), ErrNoCredentialSource)
}

func TestRun_DirResolverFailure(t *testing.T) {
	client := new(MockClient)
	client.On("VerifyAuth", mock.Anything, testCode, testPIN).Return(&apiclient.VerifyAuthResponse{MeetID: 1}, nil)

	agent := NewAgent(client, StaticCredentials{AccessCode: testCode, AdminPIN: testPIN},
		WithDirResolver(func(context.Context) (string, error) { return "", ErrWatchDirMissing }))

	err := agent.Run(context.Background())
	assert.ErrorIs(t, err, ErrWatchDirMissing)
	assert.Equal(t, StateVerified, agent.State())
}

func newTickAgent(t *testing.T, client *MockClient) (*Agent, string) {
	t.Helper()
	dir := t.TempDir()
	a := NewAgent(client, nil, WithWatchDir(dir))
	a.creds = Credentials{AccessCode: testCode, AdminPIN: testPIN}
	return a, dir
}

func TestTick_WritesAndAcknowledgesOnlyWrittenFiles(t *testing.T) {
	client := new(MockClient)
	agent, dir := newTickAgent(t, client)

	files := []domain.PendingFile{
		{Filename: "session_1_event_1_heat_1_race_1.json", Content: raceContent(1)},
		{Filename: "../escape.json", Content: raceContent(2)},
		{Filename: "session_1_event_1_heat_1_race_2-revised.json", Content: json.RawMessage(`{not json`)},
		{Filename: "session_1_event_1_heat_1_race_3-revised.json", Content: raceContent(3)},
	}
	written := []string{"session_1_event_1_heat_1_race_1.json", "session_1_event_1_heat_1_race_3-revised.json"}

	client.On("PendingFiles", mock.Anything, testCode, testPIN).Return(files, nil).Once()
	client.On("Receipt", mock.Anything, testCode, testPIN, written).Return(2, nil).Once()

	res, err := agent.Tick(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, res.Pending)
	assert.Equal(t, written, res.Written)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, 2, res.Acknowledged)

	data, err := os.ReadFile(filepath.Join(dir, written[0]))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"raceNumber\": 1,\n  \"lanes\": [\n    {\n      \"lane\": 1,\n      \"timer1\": \"00:00:31.250\"\n    }\n  ]\n}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files or escaped names left behind")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dir), "escape.json"))
	client.AssertExpectations(t)
}

func TestTick_PendingFailureSendsNoReceipt(t *testing.T) {
	client := new(MockClient)
	agent, _ := newTickAgent(t, client)
	client.On("PendingFiles", mock.Anything, testCode, testPIN).Return(nil, domain.ErrUnavailable).Once()

	_, err := agent.Tick(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	client.AssertNotCalled(t, "Receipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTick_NothingPending(t *testing.T) {
	client := new(MockClient)
	agent, _ := newTickAgent(t, client)
	client.On("PendingFiles", mock.Anything, testCode, testPIN).Return([]domain.PendingFile{}, nil).Once()

	res, err := agent.Tick(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Pending)
	client.AssertNotCalled(t, "Receipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTick_ReceiptFailureKeepsFiles(t *testing.T) {
	client := new(MockClient)
	agent, dir := newTickAgent(t, client)
	name := "session_2_event_5_heat_3_race_1.json"
	client.On("PendingFiles", mock.Anything, testCode, testPIN).
		Return([]domain.PendingFile{{Filename: name, Content: raceContent(1)}}, nil).Once()
	client.On("Receipt", mock.Anything, testCode, testPIN, []string{name}).Return(0, domain.ErrUnavailable).Once()

	res, err := agent.Tick(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, []string{name}, res.Written)
	assert.FileExists(t, filepath.Join(dir, name))
}

func TestTick_UnwritableDirectory(t *testing.T) {
	client := new(MockClient)
	agent := NewAgent(client, nil, WithWatchDir(filepath.Join(t.TempDir(), "missing")))
	agent.creds = Credentials{AccessCode: testCode, AdminPIN: testPIN}
	client.On("PendingFiles", mock.Anything, testCode, testPIN).
		Return([]domain.PendingFile{{Filename: "session_1_event_1_heat_1_race_1.json", Content: raceContent(1)}}, nil).Once()

	res, err := agent.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Empty(t, res.Written)
	client.AssertNotCalled(t, "Receipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting_credentials", StateAwaitingCredentials.String())
	assert.Equal(t, "poll_loop", StatePollLoop.String())
	assert.Equal(t, "unknown", State(99).String())
}
