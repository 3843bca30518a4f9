// Package remote drives metric collection over an SSH session. It owns
// the command executor, the per-metric dispatch commands, and the
// tolerant parsers that turn raw shell output into structured samples.
package remote

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jsnovaweb/ServerSensei/internal/errors"
	"github.com/jsnovaweb/ServerSensei/internal/logger"
	"github.com/jsnovaweb/ServerSensei/pkg/sshutil"
)

// EventType labels entries in the connection audit log.
type EventType string

const (
	EventConnectionAttempt    EventType = "connection_attempt"
	EventConnectionSuccess    EventType = "connection_success"
	EventConnectionFailed     EventType = "connection_failed"
	EventAuthenticationFailed EventType = "authentication_failed"
	EventSecurityWarning      EventType = "security_warning"
)

// Event is one entry in the connection audit log.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"event"`
	Details   string    `json:"details"`
}

// auditCapacity bounds the connection audit log. Oldest entries are
// evicted first.
const auditCapacity = 100

// AuditLog is a bounded FIFO of connection events.
type AuditLog struct {
	mu     sync.Mutex
	events []Event
}

// NewAuditLog creates an empty audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Record appends an event, evicting the oldest once capacity is reached.
func (a *AuditLog) Record(t EventType, details string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, Event{
		Timestamp: time.Now(),
		Type:      t,
		Details:   details,
	})
	if len(a.events) > auditCapacity {
		a.events = a.events[len(a.events)-auditCapacity:]
	}
}

// Events returns a copy of the log, oldest first.
func (a *AuditLog) Events() []Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Event, len(a.events))
	copy(out, a.events)
	return out
}

// Executor holds one SSH session at a time and runs single text
// commands over it. Connect and authentication outcomes, along with
// host key anomalies, are recorded in the audit log.
type Executor struct {
	mu     sync.Mutex
	client sshutil.SSHClient
	keys   *sshutil.KeyStore
	audit  *AuditLog
	log    logger.Logger
	host   string
	user   string
}

// NewExecutor creates a disconnected executor. Host keys learned on
// first contact are kept for the executor's lifetime, so a reconnect to
// the same host with a different key is flagged.
func NewExecutor() *Executor {
	return &Executor{
		keys:  sshutil.NewKeyStore(),
		audit: NewAuditLog(),
		log:   logger.Default(),
	}
}

// SetLogger replaces the executor's logger.
func (e *Executor) SetLogger(l logger.Logger) {
	e.log = l
}

// Connect establishes an SSH session to host. Any existing session is
// torn down first; its rate-tracking consumers must be reset by the
// caller.
func (e *Executor) Connect(host string, opts sshutil.DialOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client != nil {
		e.client.Close()
		e.client = nil
	}

	e.user = opts.User
	label := host
	if e.user != "" {
		label = e.user + "@" + host
	}
	e.audit.Record(EventConnectionAttempt, fmt.Sprintf("Attempting auth to %s", label))

	opts.Keys = e.keys
	opts.OnSecurityWarning = func(msg string) {
		e.audit.Record(EventSecurityWarning, msg)
		e.log.Warn("%s", msg)
	}

	client, err := sshutil.Dial(host, opts)
	if err != nil {
		if errors.IsCode(err, errors.ErrAuth) {
			e.audit.Record(EventAuthenticationFailed, fmt.Sprintf("%s - invalid credentials", label))
		} else {
			e.audit.Record(EventConnectionFailed, fmt.Sprintf("%s - %v", label, err))
		}
		return err
	}

	e.client = client
	e.host = host
	e.audit.Record(EventConnectionSuccess, fmt.Sprintf("Connected to %s", label))
	return nil
}

// Attach installs an already established client. Used by the local
// test harness; Connect is the production path.
func (e *Executor) Attach(client sshutil.SSHClient) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client != nil {
		e.client.Close()
	}
	e.client = client
	if client != nil {
		e.host = client.GetHost()
	}
}

// Connected reports whether a session is currently open.
func (e *Executor) Connected() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client != nil
}

// Host returns the host of the active session, or "" when disconnected.
func (e *Executor) Host() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.host
}

// Audit returns the connection audit log.
func (e *Executor) Audit() *AuditLog {
	return e.audit
}

// Close tears down the active session, if any.
func (e *Executor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	e.host = ""
	e.user = ""
	return err
}

// Execute runs a single command over the active session and returns its
// standard output with surrounding whitespace trimmed. Output on
// standard error counts as command failure regardless of exit code;
// remote tooling here is expected to be quiet on success, and several
// probe chains report real faults only via stderr.
func (e *Executor) Execute(cmd string) (string, error) {
	e.mu.Lock()
	client := e.client
	e.mu.Unlock()

	if client == nil {
		return "", errors.New(errors.ErrNotConnected,
			"Not connected to remote server",
			"Connect to a host first: sensei report --host <host>")
	}

	stdout, stderr, _, err := client.Exec(cmd)
	if err != nil {
		return "", err
	}

	if errText := strings.TrimSpace(string(stderr)); errText != "" {
		return "", errors.New(errors.ErrExec,
			fmt.Sprintf("Remote command reported an error: %s", errText),
			"Check that the probe's tooling exists on the remote host.")
	}

	return strings.TrimSpace(string(stdout)), nil
}

// KillProcess terminates a process on the remote host. The command
// covers Unix and Windows targets in one round trip.
func (e *Executor) KillProcess(pid int) error {
	if _, err := e.Execute(fmt.Sprintf(killCommand, pid, pid)); err != nil {
		return errors.Wrap(err, fmt.Sprintf("Failed to kill process %d", pid))
	}
	return nil
}
