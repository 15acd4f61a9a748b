// Package embedded supervises an optional embedded server process
// started and stopped alongside the client, per spec.md's "Embedded
// server collaborator. Out of scope here, but the client must call
// start() before first use and stop() at close when configured; failure
// to start aborts connect()." Grounded on the teacher's
// pkg/embedded/containerd.go process-supervision shape (exec, readiness
// wait, SIGTERM-then-kill shutdown, background exit monitor), generalized
// from managing an embedded containerd daemon to managing an embedded
// vector-database server process.
package embedded

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/cuemby/vecta-go/pkg/vlog"
	"github.com/rs/zerolog"
)

// Config configures the embedded server process.
type Config struct {
	BinaryPath string
	DataPath   string
	Port       int
	// ReadyTimeout bounds how long Start waits for the server's port to
	// accept connections before giving up.
	ReadyTimeout time.Duration
}

// Process supervises one embedded server's lifecycle.
type Process struct {
	cfg           Config
	cmd           *exec.Cmd
	exited        chan error
	stopRequested atomic.Bool
	logger        zerolog.Logger
}

// New builds a Process for cfg. Nothing is started yet.
func New(cfg Config) *Process {
	if cfg.ReadyTimeout == 0 {
		cfg.ReadyTimeout = 30 * time.Second
	}
	return &Process{cfg: cfg, logger: vlog.WithComponent("embedded")}
}

// Start launches the server binary and blocks until its port accepts
// connections or cfg.ReadyTimeout elapses. Per spec.md, a failed Start
// must abort Connect.
func (p *Process) Start(ctx context.Context) error {
	if err := os.MkdirAll(p.cfg.DataPath, 0o755); err != nil {
		return fmt.Errorf("embedded: create data directory: %w", err)
	}

	p.cmd = exec.CommandContext(ctx, p.cfg.BinaryPath,
		"--data-path", p.cfg.DataPath,
		"--port", fmt.Sprintf("%d", p.cfg.Port),
	)
	p.cmd.Stdout = &logWriter{logger: p.logger, level: vlog.InfoLevel}
	p.cmd.Stderr = &logWriter{logger: p.logger, level: vlog.ErrorLevel}

	if err := p.cmd.Start(); err != nil {
		return fmt.Errorf("embedded: start server process: %w", err)
	}
	p.exited = make(chan error, 1)
	go func() {
		err := p.cmd.Wait()
		if err != nil && !p.stopRequested.Load() {
			p.logger.Error().Err(err).Msg("embedded server process exited unexpectedly")
		}
		p.exited <- err
	}()

	if err := p.waitForReady(ctx); err != nil {
		_ = p.Stop(context.Background())
		return fmt.Errorf("embedded: server did not become ready: %w", err)
	}
	return nil
}

// Stop signals the process to shut down gracefully, force-killing it if
// it does not exit within 10 seconds.
func (p *Process) Stop(ctx context.Context) error {
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	p.stopRequested.Store(true)

	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		p.logger.Warn().Err(err).Msg("failed to send SIGTERM to embedded server")
	}

	select {
	case <-time.After(10 * time.Second):
		p.logger.Warn().Msg("embedded server did not stop gracefully, force killing")
		if err := p.cmd.Process.Kill(); err != nil {
			return fmt.Errorf("embedded: kill server process: %w", err)
		}
		<-p.exited
	case err := <-p.exited:
		if err != nil {
			p.logger.Warn().Err(err).Msg("embedded server exited with error")
		}
	}
	return nil
}

// Addr is the host:port the embedded server listens on.
func (p *Process) Addr() string {
	return fmt.Sprintf("127.0.0.1:%d", p.cfg.Port)
}

func (p *Process) waitForReady(ctx context.Context) error {
	deadline := time.Now().Add(p.cfg.ReadyTimeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", p.Addr(), time.Second)
		if err == nil {
			conn.Close()
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
	return fmt.Errorf("embedded: timed out waiting for %s", p.Addr())
}

type logWriter struct {
	logger zerolog.Logger
	level  vlog.Level
}

func (w *logWriter) Write(b []byte) (int, error) {
	switch w.level {
	case vlog.ErrorLevel:
		w.logger.Error().Msg(string(b))
	default:
		w.logger.Info().Msg(string(b))
	}
	return len(b), nil
}
