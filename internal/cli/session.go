package cli

import (
	"strconv"

	"github.com/jsnovaweb/ServerSensei/internal/config"
	"github.com/jsnovaweb/ServerSensei/internal/local"
	"github.com/jsnovaweb/ServerSensei/internal/logger"
	"github.com/jsnovaweb/ServerSensei/internal/metrics"
	"github.com/jsnovaweb/ServerSensei/internal/remote"
	"github.com/jsnovaweb/ServerSensei/internal/resource"
	"github.com/jsnovaweb/ServerSensei/internal/security"
	"github.com/jsnovaweb/ServerSensei/internal/snapshot"
	"github.com/jsnovaweb/ServerSensei/pkg/sshutil"
)

// session holds the resolved collection target and everything needed to
// build a snapshot from it. Close releases the SSH connection, if any.
type session struct {
	cfg    *config.Config
	target config.ConnectionTarget
	source metrics.Source
	exec   *remote.Executor // nil on the local path
	local  *local.Source    // nil on the remote path
}

// openSession loads the config, resolves the requested target, and
// connects to it. An empty target flag falls back to the config default,
// which in turn falls back to the local machine.
func openSession(flags ConnFlags) (*session, error) {
	if err := flags.Validate(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(Config())
	if err != nil {
		return nil, err
	}

	var target config.ConnectionTarget
	if flags.Host != "" {
		target = config.RemoteTarget(flags.Host, config.Target{
			Host:    flags.Host,
			Port:    flags.Port,
			User:    flags.User,
			KeyFile: flags.KeyFile,
		})
	} else {
		target, err = cfg.Resolve(flags.Target)
		if err != nil {
			return nil, err
		}
	}

	s := &session{cfg: cfg, target: target}
	if target.IsLocal() {
		s.local = local.NewSource()
		s.source = s.local
		return s, nil
	}

	remoteTarget := *target.Remote
	if flags.User != "" {
		remoteTarget.User = flags.User
	}
	if flags.Port != 0 {
		remoteTarget.Port = flags.Port
	}
	if flags.KeyFile != "" {
		remoteTarget.KeyFile = flags.KeyFile
	}

	opts := sshutil.DialOptions{
		User:    remoteTarget.User,
		KeyFile: remoteTarget.KeyFile,
		Timeout: cfg.ConnectTimeout,
	}
	if remoteTarget.Port != 0 {
		opts.Port = strconv.Itoa(remoteTarget.Port)
	}
	if flags.AskPass {
		pw, err := promptPassword(remoteTarget.Host)
		if err != nil {
			return nil, err
		}
		opts.Password = pw
	}

	exec := remote.NewExecutor()
	exec.SetLogger(logger.Default())
	if err := exec.Connect(remoteTarget.Host, opts); err != nil {
		return nil, err
	}

	s.exec = exec
	s.source = remote.NewSource(exec)
	return s, nil
}

// builder assembles a snapshot builder for this session. Security scans
// and hardware sampling run only on the local path; the remote protocol
// covers the portable sections.
func (s *session) builder() *snapshot.Builder {
	b := snapshot.NewBuilder(s.source).WithLogger(logger.Default())
	if s.local != nil {
		b = b.WithSecurity(security.NewScanner()).WithResources(resource.NewSampler())
	}
	return b
}

// snapshotFile resolves the baseline path, preferring the command flag
// over the config file.
func (s *session) snapshotFile(flag string) string {
	if flag != "" {
		return flag
	}
	if s.cfg.SnapshotFile != "" {
		return s.cfg.SnapshotFile
	}
	return snapshot.DefaultFile
}

// kill terminates a process on the session's target.
func (s *session) kill(pid int) error {
	if s.exec != nil {
		return s.exec.KillProcess(pid)
	}
	return s.local.KillProcess(pid)
}

// Close releases the remote connection, if one is open.
func (s *session) Close() error {
	if s.exec != nil {
		return s.exec.Close()
	}
	return nil
}
