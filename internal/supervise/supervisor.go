package supervise

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"bindery/internal/logging"
	"bindery/internal/progress"
	"bindery/internal/protocol"
)

// MachineReadableFlag is appended to every tool invocation so the tool
// emits the line-delimited JSON protocol instead of its interactive
// display.
const MachineReadableFlag = "--machine-readable"

// SpawnFailureExitCode marks runs where the tool could not be launched at
// all, distinct from any code the tool itself reports.
const SpawnFailureExitCode = 127

// maxLineBytes bounds how much of a single stdout line is retained for the
// decoder. Longer lines are skipped whole; the stream keeps flowing so the
// tool never blocks on a full pipe.
const maxLineBytes = 1024 * 1024

var commandContext = exec.CommandContext

// Reporter receives pipeline output. The renderer is the production
// implementation; tests substitute recorders.
type Reporter interface {
	HandleEvent(event protocol.Event, snap progress.Snapshot)
	ChildFailure(code int, stderr string)
	SpawnFailure(err error)
	Warn(message string)
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithLogger attaches a diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Supervisor) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLockPath enables the single-instance guard at the given lock file.
func WithLockPath(path string) Option {
	return func(s *Supervisor) {
		s.lockPath = path
	}
}

// Supervisor drives one conversion tool run end to end.
type Supervisor struct {
	binary   string
	reporter Reporter
	logger   *slog.Logger
	lockPath string
}

// New constructs a supervisor for the given tool binary.
func New(binary string, reporter Reporter, opts ...Option) *Supervisor {
	s := &Supervisor{
		binary:   binary,
		reporter: reporter,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run spawns the tool with args plus the machine-readable flag, consumes
// its output stream, and returns the exit code bindery should report: 0 on
// success, the child's own non-zero code, or SpawnFailureExitCode when the
// child never started.
func (s *Supervisor) Run(ctx context.Context, args []string) int {
	logger := s.logger.With(
		logging.String("run_id", uuid.NewString()),
		logging.String("tool", s.binary),
	)

	if s.lockPath != "" {
		lock := flock.New(s.lockPath)
		ok, err := lock.TryLock()
		if err != nil {
			s.reportSpawnFailure(logger, fmt.Errorf("acquire run lock %s: %w", s.lockPath, err))
			return SpawnFailureExitCode
		}
		if !ok {
			s.reportSpawnFailure(logger, fmt.Errorf("another bindery run holds %s", s.lockPath))
			return SpawnFailureExitCode
		}
		defer func() {
			_ = lock.Unlock()
		}()
	}

	cmdArgs := make([]string, 0, len(args)+1)
	cmdArgs = append(cmdArgs, args...)
	cmdArgs = append(cmdArgs, MachineReadableFlag)

	cmd := commandContext(ctx, s.binary, cmdArgs...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		s.reportSpawnFailure(logger, fmt.Errorf("stdout pipe: %w", err))
		return SpawnFailureExitCode
	}
	stderr := newCappedBuffer(64 * 1024)
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		s.reportSpawnFailure(logger, fmt.Errorf("start %s: %w", s.binary, err))
		return SpawnFailureExitCode
	}
	logger.Info("conversion tool started", logging.Int("args", len(cmdArgs)))

	tracker := progress.NewTracker()
	if err := s.consume(stdout, tracker, logger); err != nil {
		// The stream broke mid-run; the exit status below still decides
		// the outcome. Drain whatever the tool still writes so it can exit.
		logger.Error("read tool output", logging.Error(err))
		_, _ = io.Copy(io.Discard, stdout)
	}

	waitErr := cmd.Wait()
	snap := tracker.Snapshot()

	if waitErr == nil {
		if !snap.Completed {
			logger.Warn("stream ended without conversion_completed")
			s.reporter.Warn("conversion ended without a completion event")
		}
		logger.Info("conversion tool exited", logging.Int("exit_code", 0), logging.Bool("success", snap.Success))
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by signal; no meaningful child code to mirror.
			code = 1
		}
		logger.Error("conversion tool failed",
			logging.Int("exit_code", code),
			logging.Int("stderr_bytes", stderr.Len()),
		)
		s.reporter.ChildFailure(code, stderr.String())
		return code
	}

	s.reportSpawnFailure(logger, fmt.Errorf("wait for %s: %w", s.binary, waitErr))
	return SpawnFailureExitCode
}

// Replay feeds a previously captured event stream through the same
// pipeline without spawning the tool.
func (s *Supervisor) Replay(r io.Reader) error {
	logger := s.logger.With(logging.String("run_id", uuid.NewString()), logging.String("mode", "replay"))
	tracker := progress.NewTracker()
	if err := s.consume(r, tracker, logger); err != nil {
		return fmt.Errorf("replay stream: %w", err)
	}
	if !tracker.Snapshot().Completed {
		s.reporter.Warn("conversion ended without a completion event")
	}
	return nil
}

// consume processes the stream strictly line by line: decode, apply,
// report, then read the next line. Lines beyond maxLineBytes are skipped
// in full without stopping the loop.
func (s *Supervisor) consume(r io.Reader, tracker *progress.Tracker, logger *slog.Logger) error {
	reader := bufio.NewReaderSize(r, 64*1024)
	for {
		line, truncated, err := readLine(reader)
		if truncated {
			logger.Warn("skipping oversized line", logging.Int("limit_bytes", maxLineBytes))
		} else if len(line) > 0 {
			s.handleLine(string(line), tracker, logger)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (s *Supervisor) handleLine(line string, tracker *progress.Tracker, logger *slog.Logger) {
	event, err := protocol.Decode(line)
	if err != nil {
		if errors.Is(err, protocol.ErrBlankLine) {
			return
		}
		logger.Debug("skipping undecodable line", logging.Error(err))
		return
	}

	for _, anomaly := range tracker.Apply(event) {
		logger.Warn("protocol anomaly",
			logging.String("event", string(anomaly.Event)),
			logging.String("detail", anomaly.Message),
		)
	}

	logger.Debug("event", logging.String("type", string(event.EventType())))
	s.reporter.HandleEvent(event, tracker.Snapshot())
}

// readLine reads up to the next newline. When a line exceeds maxLineBytes
// its bytes are consumed and discarded and truncated reports true. A final
// unterminated line is returned alongside io.EOF.
func readLine(r *bufio.Reader) (line []byte, truncated bool, err error) {
	for {
		chunk, err := r.ReadSlice('\n')
		if len(chunk) > 0 && !truncated {
			if len(line)+len(chunk) > maxLineBytes {
				truncated = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		switch {
		case err == nil:
			return line, truncated, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		default:
			return line, truncated, err
		}
	}
}

func (s *Supervisor) reportSpawnFailure(logger *slog.Logger, err error) {
	logger.Error("spawn failure", logging.Error(err))
	s.reporter.SpawnFailure(err)
}
