// Package console drives the timer from line-oriented text commands.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"focustimer/internal/core/clock"
	"focustimer/internal/core/model"
)

// ErrUnknownCommand is returned for input that matches no command.
var ErrUnknownCommand = errors.New("unknown command")

const defaultHistoryLimit = 10

// Controller is the timer surface the console drives.
type Controller interface {
	Start(ctx context.Context, timerType model.TimerType)
	Toggle(ctx context.Context)
	AddOneMinute(ctx context.Context)
	Finish(ctx context.Context)
	Next(ctx context.Context)
	Skip(ctx context.Context)
	Reset(ctx context.Context)
	Data() model.DomainTimerData
	BreakBudget() time.Duration
	Streak() int
}

// Labels lists and switches labels.
type Labels interface {
	Labels(ctx context.Context) []string
	SetActiveLabel(ctx context.Context, name string) error
}

// History lists recorded sessions, newest first.
type History interface {
	Recent(ctx context.Context, limit int) ([]model.Session, error)
}

// Console maps commands to controller operations and prints the outcome.
type Console struct {
	controller Controller
	labels     Labels
	history    History
	clock      clock.Clock
	out        io.Writer
	logger     *slog.Logger
}

// New creates a console writing to out.
func New(controller Controller, labels Labels, history History, source clock.Clock, out io.Writer, logger *slog.Logger) *Console {
	return &Console{
		controller: controller,
		labels:     labels,
		history:    history,
		clock:      source,
		out:        out,
		logger:     logger.With("component", "console"),
	}
}

// Run executes commands read from in until quit, EOF or ctx is done.
func (console *Console) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read commands: %w", err)
					}
				default:
				}
				return nil
			}
			quit, err := console.Execute(ctx, line)
			if err != nil {
				console.printf("error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// Execute runs one command line. It reports whether the console should stop.
func (console *Console) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	command, args := strings.ToLower(fields[0]), fields[1:]
	console.logger.Debug("command", "name", command, "args", args)

	switch command {
	case "start":
		kind := ""
		if len(args) > 0 {
			kind = strings.ToLower(args[0])
		}
		timerType, ok := model.ParseTimerType(kind)
		if !ok {
			return false, fmt.Errorf("unknown segment type %q", kind)
		}
		console.controller.Start(ctx, timerType)
	case "toggle", "pause", "resume":
		console.controller.Toggle(ctx)
	case "add", "+1":
		console.controller.AddOneMinute(ctx)
	case "finish":
		console.controller.Finish(ctx)
	case "next":
		console.controller.Next(ctx)
	case "skip":
		console.controller.Skip(ctx)
	case "reset", "stop":
		console.controller.Reset(ctx)
	case "label":
		return false, console.label(ctx, args)
	case "history":
		return false, console.printHistory(ctx, args)
	case "status":
	case "help":
		console.printHelp()
		return false, nil
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
	console.printStatus()
	return false, nil
}

func (console *Console) label(ctx context.Context, args []string) error {
	if len(args) == 0 {
		names := console.labels.Labels(ctx)
		active := console.controller.Data().Label.Name
		console.printf("labels: %s\n", strings.Join(append([]string{"(default)"}, names...), ", "))
		console.printf("active: %s\n", displayLabel(active))
		return nil
	}
	name := strings.Join(args, " ")
	if name == "default" {
		name = ""
	}
	if err := console.labels.SetActiveLabel(ctx, name); err != nil {
		return err
	}
	console.printf("active label: %s\n", displayLabel(name))
	return nil
}

func (console *Console) printHistory(ctx context.Context, args []string) error {
	limit := defaultHistoryLimit
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed <= 0 {
			return fmt.Errorf("invalid history limit %q", args[0])
		}
		limit = parsed
	}
	sessions, err := console.history.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		console.printf("no sessions recorded\n")
		return nil
	}
	for _, session := range sessions {
		kind := "break"
		if session.IsWork {
			kind = "work"
		}
		suffix := ""
		if session.Interrupted {
			suffix = " (interrupted)"
		}
		console.printf("%s  %-5s %3d min  %s%s\n",
			session.Timestamp.Local().Format("2006-01-02 15:04"),
			kind,
			session.Duration,
			displayLabel(session.Label),
			suffix)
	}
	return nil
}

func (console *Console) printStatus() {
	console.printf("%s\n", FormatStatus(
		console.controller.Data(),
		console.clock.NowMillis(),
		console.controller.BreakBudget(),
		console.controller.Streak()))
}

func (console *Console) printHelp() {
	console.printf("commands: start [work|break|long], toggle, add, finish, next, skip, reset, " +
		"label [name], history [n], status, quit\n")
}

func (console *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(console.out, format, args...); err != nil {
		console.logger.Warn("write output", "error", err)
	}
}

// FormatStatus renders a one-line summary of a snapshot.
func FormatStatus(data model.DomainTimerData, now int64, budget time.Duration, streak int) string {
	label := displayLabel(data.Label.Name)
	if !data.IsReady {
		return "loading label..."
	}

	var status string
	switch data.State {
	case model.StateRunning:
		status = fmt.Sprintf("%s running, %s left", data.Type, formatRemaining(data.RemainingAt(now)))
	case model.StatePaused:
		status = fmt.Sprintf("%s paused, %s left", data.Type, formatRemaining(data.RemainingAt(now)))
	case model.StateFinished:
		status = fmt.Sprintf("%s finished after %d min", data.Type, data.CompletedMinutes)
	default:
		status = "idle"
	}

	status = fmt.Sprintf("[%s] %s | streak %d", label, status, streak)
	if !data.Profile().IsCountdown {
		status = fmt.Sprintf("%s | break budget %s", status, formatRemaining(budget))
	}
	return status
}

func displayLabel(name string) string {
	if name == "" {
		return "default"
	}
	return name
}

func formatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
