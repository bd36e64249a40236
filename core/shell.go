package core

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/abiosoft/readline"
	"github.com/seashell-dev/seashell/core/config"
	"github.com/seashell-dev/seashell/core/proc"
	"github.com/seashell-dev/seashell/core/shell"
)

const EnvHome = "HOME"

// Shell is the interactive read-eval loop: it reads one line per prompt
// cycle, dispatches builtins, and hands everything else to the classifier
// and orchestrator. All state is per-session; plans never outlive the line
// that produced them.
type Shell struct {
	Config   *config.Configuration
	Readline *readline.Instance
	Orch     *proc.Orchestrator

	stdout io.Writer
	stderr io.Writer

	recorder *Recorder

	// Set once a builtin decides the session is over.
	quit       bool
	exitStatus int
}

// NewShell wires a shell to the given streams. For the real binary these
// are the process's own standard streams; tests substitute pipes or
// buffers.
func NewShell(cfg *config.Configuration, stdin io.ReadCloser, stdout, stderr io.Writer) (*Shell, error) {
	rlCfg := &readline.Config{
		Prompt: cfg.Prompt,
		Stdin:  readline.NewCancelableStdin(stdin),
		Stdout: stdout,
		Stderr: stderr,
	}

	if err := rlCfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return nil, err
	}

	orch := &proc.Orchestrator{
		OutputFileMode: os.FileMode(cfg.OutputFileMode),
	}
	// Children inherit real descriptors where we have them.
	if f, ok := stdout.(*os.File); ok {
		orch.Stdout = f
	}
	if f, ok := stderr.(*os.File); ok {
		orch.Stderr = f
	}
	if f, ok := stdin.(*os.File); ok {
		orch.Stdin = f
	}

	s := &Shell{
		Config:   cfg,
		Readline: rl,
		Orch:     orch,
		stdout:   stdout,
		stderr:   stderr,
	}

	if cfg.RecordSessions {
		name := fmt.Sprintf("%s.log", time.Now().Format("2006-01-02T15-04-05"))
		fd, err := cfg.CreateSessionLog(name)
		if err != nil {
			// Transcripts are best effort, never fatal.
			log.Printf("Couldn't open session transcript: %v", err)
		} else {
			s.recorder = NewRecorder(fd)
		}
	}

	return s, nil
}

// Run drives the interactive loop until end-of-input or the exit builtin,
// returning the interpreter's exit status.
func (s *Shell) Run() int {
	if s.Config.ShowBanner {
		Banner(s.stdout, time.Now())
	}

	for !s.quit {
		s.Readline.SetPrompt(s.Config.Prompt)
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			s.quit = true // Input closed, quit.

		case err == readline.ErrInterrupt:
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			continue

		case len(line) == 0:
			continue

		default:
			s.Eval(line)
		}
	}

	s.Close()

	return s.exitStatus
}

// Eval runs a single input line: builtins first, then classification and
// orchestration. Failures are reported to stderr and the loop carries on;
// no failure here ever takes down the interpreter itself.
func (s *Shell) Eval(line string) {
	err := s.eval(line)
	if s.recorder != nil {
		s.recorder.Record(line, err)
	}

	if err != nil && !errors.Is(err, shell.ErrEmptyCommand) {
		fmt.Fprintf(s.stderr, "seashell: %v\n", err)
	}
}

func (s *Shell) eval(line string) error {
	if err := shell.CheckLineLength(line, s.Config.MaxLineLength); err != nil {
		return err
	}

	tokens, err := shell.Tokenize(line, s.Config.MaxTokens)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	switch tokens[0] {
	case "exit":
		s.quit = true
		s.exitStatus = 1
		return nil
	case "cd":
		return s.builtinCd(tokens)
	}

	plan, err := shell.Classify(tokens)
	if err != nil {
		return err
	}

	return s.Orch.Run(plan)
}

// ExitStatus reports the status the loop will exit with.
func (s *Shell) ExitStatus() int {
	return s.exitStatus
}

// Close releases the session's resources: it reaps any remaining detached
// children and flushes the transcript.
func (s *Shell) Close() {
	s.Orch.Drain()
	if s.recorder != nil {
		_ = s.recorder.Close()
	}
	if s.Readline != nil {
		_ = s.Readline.Close()
	}
}

func (s *Shell) builtinCd(args []string) error {
	switch len(args) {
	case 1:
		args = append(args, "~")
		fallthrough
	case 2:
		if args[1] != "~" {
			if err := os.Chdir(args[1]); err != nil {
				return fmt.Errorf("cd: %w", err)
			}
			return nil
		}

		// Failing to reach $HOME is unrecoverable: the session ends
		// with a failure status.
		home := os.Getenv(EnvHome)
		if home == "" {
			s.quit = true
			s.exitStatus = 1
			return errors.New("cd: HOME not set")
		}
		if err := os.Chdir(home); err != nil {
			s.quit = true
			s.exitStatus = 1
			return fmt.Errorf("cd: %w", err)
		}
		return nil

	default:
		return errors.New("cd: too many arguments")
	}
}
