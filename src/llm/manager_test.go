package llm_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/elee1766/pocketllm/src/agent"
	"github.com/elee1766/pocketllm/src/llm"
	"github.com/elee1766/pocketllm/src/llm/llmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, rt llm.Runtime, onState func(llm.SessionState)) *llm.Manager {
	t.Helper()
	m, err := llm.NewManager(llm.ManagerConfig{
		Runtime:       rt,
		Toolbox:       agent.NewToolbox[agent.Tool](),
		Instructions:  func() string { return "be brief" },
		HistoryLimit:  12,
		OnStateChange: onState,
	})
	require.NoError(t, err)
	return m
}

func TestGenerateCreatesSessionOnce(t *testing.T) {
	rt := llmtest.NewRuntime(nil)
	m := newManager(t, rt, nil)

	assert.Equal(t, llm.SessionState{}, m.State())

	for _, prompt := range []string{"one", "two", "three"} {
		text, err := m.Generate(context.Background(), prompt)
		require.NoError(t, err)
		assert.Equal(t, "echo: "+prompt, text)
	}

	sessions := rt.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, "be brief", sessions[0].Instructions)
	assert.Equal(t, 12, sessions[0].HistoryLimit)
	assert.Equal(t, []string{"one", "two", "three"}, rt.Prompts())
	assert.Equal(t, llm.SessionState{HasActiveSession: true}, m.State())
}

func TestGenerateUnavailableTouchesNothing(t *testing.T) {
	rt := llmtest.NewRuntime(nil)
	rt.SetAvailability(llm.Unavailable(llm.ReasonDeviceNotEligible, ""))

	var transitions []llm.SessionState
	m := newManager(t, rt, func(s llm.SessionState) { transitions = append(transitions, s) })

	_, err := m.Generate(context.Background(), "hi")
	require.ErrorIs(t, err, llm.ErrModelNotAvailable)
	assert.Equal(t, "On-device model is not available: Device not eligible.", llm.UserMessage(err))

	assert.Empty(t, rt.Sessions())
	assert.Empty(t, rt.Prompts())
	assert.Empty(t, transitions)
	assert.Equal(t, llm.SessionState{}, m.State())
}

func TestGenerateWhileRespondingFailsFast(t *testing.T) {
	gate := llmtest.NewGate()
	rt := llmtest.NewRuntime(gate.Reply(nil))
	m := newManager(t, rt, nil)

	done := make(chan error, 1)
	go func() {
		_, err := m.Generate(context.Background(), "slow")
		done <- err
	}()
	<-gate.Entered()

	before := m.State()
	assert.Equal(t, llm.SessionState{HasActiveSession: true, IsResponding: true}, before)

	_, err := m.Generate(context.Background(), "impatient")
	require.ErrorIs(t, err, llm.ErrSessionBusy)
	assert.Equal(t, before, m.State(), "busy call must not change state")
	assert.Len(t, rt.Sessions(), 1)
	assert.Equal(t, []string{"slow"}, rt.Prompts())

	gate.Release()
	require.NoError(t, <-done)
	assert.False(t, m.State().IsResponding)
}

func TestConcurrentGenerateExactlyOneProceeds(t *testing.T) {
	gate := llmtest.NewGate()
	rt := llmtest.NewRuntime(gate.Reply(nil))
	m := newManager(t, rt, nil)

	const callers = 16
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := m.Generate(context.Background(), "race")
			errs <- err
		}()
	}
	close(start)

	<-gate.Entered()
	// Every other caller fails without waiting for the gate.
	busy := 0
	for busy < callers-1 {
		err := <-errs
		require.ErrorIs(t, err, llm.ErrSessionBusy)
		busy++
	}

	gate.Release()
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	assert.Len(t, rt.Sessions(), 1)
	assert.Len(t, rt.Prompts(), 1)
}

func TestStuckGenerationBlocksUntilItReturns(t *testing.T) {
	// Known boundary: there is no timeout, so a hung response keeps the
	// session busy for as long as it hangs.
	gate := llmtest.NewGate()
	rt := llmtest.NewRuntime(gate.Reply(nil))
	m := newManager(t, rt, nil)

	go func() { _, _ = m.Generate(context.Background(), "hang") }()
	<-gate.Entered()

	deadline := time.Now().Add(50 * time.Millisecond)
	for time.Now().Before(deadline) {
		_, err := m.Generate(context.Background(), "again")
		require.ErrorIs(t, err, llm.ErrSessionBusy)
	}

	gate.Release()
	require.Eventually(t, func() bool { return !m.State().IsResponding }, time.Second, time.Millisecond)
	_, err := m.Generate(context.Background(), "after")
	require.NoError(t, err)
}

func TestGenerateErrorReturnsToIdle(t *testing.T) {
	boom := errors.New("runtime crashed")
	rt := llmtest.NewRuntime(func(ctx context.Context, cfg llm.SessionConfig, prompt string) (string, error) {
		if prompt == "fail" {
			return "", boom
		}
		return "fine", nil
	})

	var transitions []llm.SessionState
	m := newManager(t, rt, func(s llm.SessionState) { transitions = append(transitions, s) })

	_, err := m.Generate(context.Background(), "fail")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, llm.SessionState{HasActiveSession: true}, m.State())

	text, err := m.Generate(context.Background(), "ok")
	require.NoError(t, err)
	assert.Equal(t, "fine", text)
	assert.Len(t, rt.Sessions(), 1)

	assert.Equal(t, []llm.SessionState{
		{HasActiveSession: true, IsResponding: true},
		{HasActiveSession: true},
		{HasActiveSession: true, IsResponding: true},
		{HasActiveSession: true},
	}, transitions)
}

func TestGeneratePanicReturnsToIdle(t *testing.T) {
	rt := llmtest.NewRuntime(func(ctx context.Context, cfg llm.SessionConfig, prompt string) (string, error) {
		if prompt == "panic" {
			panic("tool handler blew up")
		}
		return "recovered", nil
	})

	var transitions []llm.SessionState
	m := newManager(t, rt, func(s llm.SessionState) { transitions = append(transitions, s) })

	assert.Panics(t, func() {
		_, _ = m.Generate(context.Background(), "panic")
	})
	assert.Equal(t, llm.SessionState{HasActiveSession: true}, m.State())
	assert.Equal(t, []llm.SessionState{
		{HasActiveSession: true, IsResponding: true},
		{HasActiveSession: true},
	}, transitions)

	text, err := m.Generate(context.Background(), "again")
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
}

func TestNewManagerRequiresRuntime(t *testing.T) {
	_, err := llm.NewManager(llm.ManagerConfig{})
	assert.Error(t, err)
}
