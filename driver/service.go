package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/getstarted/bookshelf-journey-tests/framework"
	"github.com/getstarted/bookshelf-journey-tests/poll"
)

const (
	// DefaultStartupTimeout bounds Start when Config.StartupTimeout is not set.
	DefaultStartupTimeout = 20 * time.Second
	stopTimeout           = 10 * time.Second
)

// Config controls how the driver service process is launched.
type Config struct {
	// Binary is the browser executable name or path. If empty, well-known Chrome and Chromium
	// names are looked up in PATH.
	Binary string
	// Port is the remote-debugging port. Zero selects a free local port.
	Port      int
	Headless  bool
	ExtraArgs []string
	// StartupTimeout bounds how long Start waits for the service to answer status queries.
	StartupTimeout time.Duration
	// Output receives the process's stdout and stderr. Nil discards it.
	Output io.Writer
}

// Service manages the single browser driver process shared by every scenario in a run. It is
// started once before the first scenario and stopped once after the last.
type Service struct {
	config      Config
	logger      framework.Logger
	command     func(binary string, port int, userDataDir string, headless bool, extraArgs []string) commandBuilder
	cmd         *exec.Cmd
	exited      chan struct{}
	exitErr     error
	userDataDir string
	endpoint    Endpoint
	lock        sync.Mutex
}

// NewService returns a Service that has not been started yet.
func NewService(config Config, logger framework.Logger) *Service {
	if logger == nil {
		logger = framework.NullLogger()
	}
	if config.StartupTimeout <= 0 {
		config.StartupTimeout = DefaultStartupTimeout
	}
	return &Service{
		config:  config,
		logger:  logger,
		command: buildCommand,
	}
}

// Start launches the driver process and waits until it is reachable. If anything fails, the
// partially started process is stopped and a *ServiceStartError is returned.
func (s *Service) Start() (Endpoint, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.cmd != nil {
		return s.endpoint, nil
	}

	binary, err := findBinary(s.config.Binary)
	if err != nil {
		return Endpoint{}, &ServiceStartError{Command: s.config.Binary, Err: err}
	}
	port := s.config.Port
	if port == 0 {
		if port, err = freePort(); err != nil {
			return Endpoint{}, &ServiceStartError{Command: binary, Err: err}
		}
	}
	s.userDataDir, err = os.MkdirTemp("", "journey-driver-")
	if err != nil {
		return Endpoint{}, &ServiceStartError{Command: binary, Err: err}
	}

	cmdLine := s.command(binary, port, s.userDataDir, s.config.Headless, s.config.ExtraArgs)
	s.logger.Printf("Starting driver service: %s", cmdLine)

	cmd := exec.Command(cmdLine[0], cmdLine[1:]...)
	output := s.config.Output
	if output == nil {
		output = io.Discard
	}
	cmd.Stdout = output
	cmd.Stderr = output
	setProcessGroup(cmd)
	if err := cmd.Start(); err != nil {
		_ = s.stopLocked()
		return Endpoint{}, &ServiceStartError{Command: cmdLine.String(), Err: err}
	}
	s.cmd = cmd
	exited := make(chan struct{})
	s.exited = exited
	go func() {
		s.exitErr = cmd.Wait()
		close(exited)
	}()

	endpoint, err := s.awaitReachable(fmt.Sprintf("http://127.0.0.1:%d", port))
	if err != nil {
		_ = s.stopLocked()
		return Endpoint{}, &ServiceStartError{Command: cmdLine.String(), Err: err}
	}
	s.endpoint = endpoint
	logEndpoint(s.logger, endpoint)
	return endpoint, nil
}

func (s *Service) awaitReachable(baseURL string) (Endpoint, error) {
	var endpoint Endpoint
	var lastErr error
	err := poll.Until(context.Background(), func(ctx context.Context) (bool, error) {
		select {
		case <-s.exited:
			return false, fmt.Errorf("process exited before becoming reachable: %v", s.exitErr)
		default:
		}
		endpoint, lastErr = queryEndpoint(ctx, baseURL)
		return lastErr == nil, nil
	}, poll.Options{Interval: 50 * time.Millisecond, MaxInterval: 500 * time.Millisecond, Timeout: s.config.StartupTimeout})
	if errors.Is(err, poll.ErrTimeout) {
		return Endpoint{}, fmt.Errorf("not reachable at %s after %s, result of last query was: %w",
			baseURL, s.config.StartupTimeout, lastErr)
	}
	return endpoint, err
}

// Stop terminates the driver process. It is safe to call before Start, after a failed Start, more
// than once, and after the process has already exited on its own.
func (s *Service) Stop() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.stopLocked()
}

func (s *Service) stopLocked() error {
	var err error
	if s.cmd != nil {
		// Child processes can outlive the main one, so the group is killed even if it already exited.
		if killErr := killProcessTree(s.cmd); killErr != nil && !errors.Is(killErr, os.ErrProcessDone) {
			err = fmt.Errorf("could not kill driver service: %w", killErr)
		}
		select {
		case <-s.exited:
		case <-time.After(stopTimeout):
			if err == nil {
				err = fmt.Errorf("driver service (pid %d) did not exit within %s", s.cmd.Process.Pid, stopTimeout)
			}
		}
		s.logger.Printf("Driver service stopped")
	}
	s.cmd = nil
	s.endpoint = Endpoint{}
	if s.userDataDir != "" {
		_ = os.RemoveAll(s.userDataDir)
		s.userDataDir = ""
	}
	return err
}

// Endpoint returns the endpoint of the running service, or a zero Endpoint if it is not running.
func (s *Service) Endpoint() Endpoint {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.endpoint
}

// Running reports whether the process has been started and has not exited.
func (s *Service) Running() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.cmd == nil {
		return false
	}
	select {
	case <-s.exited:
		return false
	default:
		return true
	}
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("could not reserve a local port: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
