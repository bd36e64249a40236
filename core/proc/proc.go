package proc

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/seashell-dev/seashell/core/shell"
)

var (
	// ErrExecutableNotFound is returned when a stage's program can't be
	// resolved on the search path. Zero processes are created.
	ErrExecutableNotFound = errors.New("command not found")
	// ErrProcessCreation is returned when a child process could not be
	// started.
	ErrProcessCreation = errors.New("could not start process")
	// ErrPipeCreation is returned when the pipeline's pipe could not be
	// created.
	ErrPipeCreation = errors.New("could not create pipe")
)

// Orchestrator realizes command plans as live processes.
//
// It is the only component that touches OS resources: it opens redirect
// targets, creates the pipe for two-stage pipelines, spawns children with
// their descriptor tables already wired, and waits for (or detaches from)
// them. The zero value is usable and inherits the interpreter's own
// standard streams.
type Orchestrator struct {
	// Stdin, Stdout and Stderr are the streams children inherit when no
	// redirect or pipe rebinds them. Nil falls back to the interpreter's
	// own streams.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	// LookPath resolves a program name on the search path. Nil means
	// exec.LookPath.
	LookPath func(name string) (string, error)

	// OutputFileMode is the creation mode for redirect targets. Zero
	// means DefaultOutputFileMode.
	OutputFileMode os.FileMode

	reapers sync.WaitGroup
}

// Run realizes one plan. Foreground plans block until every child has
// terminated (exit status is collected and discarded); background plans
// return as soon as the children are started, leaving a reaper goroutine to
// collect them so no zombies accumulate.
func (o *Orchestrator) Run(plan *shell.Plan) error {
	if plan.Pipe != nil {
		return o.runPipeline(plan)
	}

	return o.runSingle(plan)
}

// Drain blocks until every detached background child has been reaped. The
// interpreter calls it on shutdown; tests use it to assert goroutine
// hygiene.
func (o *Orchestrator) Drain() {
	o.reapers.Wait()
}

func (o *Orchestrator) runSingle(plan *shell.Plan) error {
	path, err := o.resolve(plan.Argv[0])
	if err != nil {
		return err
	}

	stdin, stdout := o.stdin(), o.stdout()

	var opened []*os.File
	defer func() { closeAll(opened) }()

	if plan.Input != nil {
		f, err := openInput(plan.Input.Path)
		if err != nil {
			return err
		}
		opened = append(opened, f)
		stdin = f
	}

	if plan.Output != nil {
		f, err := openOutput(plan.Output.Path, plan.Output.Append, o.fileMode())
		if err != nil {
			return err
		}
		opened = append(opened, f)
		stdout = f
	}

	child, err := o.start(path, plan.Argv, stdin, stdout)
	if err != nil {
		return err
	}

	if plan.Background {
		o.detach(child)
		return nil
	}

	_, err = child.Wait()

	return err
}

func (o *Orchestrator) runPipeline(plan *shell.Plan) error {
	// Resolve both programs before creating any OS resource so a bad
	// second stage costs nothing.
	leftPath, err := o.resolve(plan.Argv[0])
	if err != nil {
		return err
	}
	rightPath, err := o.resolve(plan.Pipe.Argv[0])
	if err != nil {
		return err
	}

	var opened []*os.File
	defer func() { closeAll(opened) }()

	leftStdin := o.stdin()
	if plan.Input != nil {
		f, err := openInput(plan.Input.Path)
		if err != nil {
			return err
		}
		opened = append(opened, f)
		leftStdin = f
	}

	rightStdout := o.stdout()
	if plan.Pipe.Output != nil {
		f, err := openOutput(plan.Pipe.Output.Path, plan.Pipe.Output.Append, o.fileMode())
		if err != nil {
			return err
		}
		opened = append(opened, f)
		rightStdout = f
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return errors.Join(ErrPipeCreation, err)
	}

	left, err := o.start(leftPath, plan.Argv, leftStdin, pw)
	if err != nil {
		pr.Close()
		pw.Close()

		return err
	}

	right, err := o.start(rightPath, plan.Pipe.Argv, pr, rightStdout)
	if err != nil {
		// Never leave the first child dangling: kill it and reap it
		// before reporting.
		pr.Close()
		pw.Close()
		_ = left.Kill()
		_, _ = left.Wait()

		return err
	}

	// The parent is not a data-path participant. Both pipe ends must be
	// closed here, or the reader would never see EOF while the parent
	// still holds a writer reference.
	pr.Close()
	pw.Close()

	if plan.Background {
		o.detach(left, right)
		return nil
	}

	// Either completion order is fine; the pipe itself is the only
	// ordering constraint between the two children.
	_, lerr := left.Wait()
	_, rerr := right.Wait()
	if lerr != nil {
		return lerr
	}

	return rerr
}

// start spawns one child with the given stdin/stdout bound into its
// descriptor table. The environment and working directory are inherited.
func (o *Orchestrator) start(path string, argv []string, stdin, stdout *os.File) (*os.Process, error) {
	child, err := os.StartProcess(path, argv, &os.ProcAttr{
		Files: []*os.File{stdin, stdout, o.stderr()},
	})
	if err != nil {
		return nil, errors.Join(ErrProcessCreation, err)
	}

	return child, nil
}

// detach hands the children to a reaper goroutine so the interactive loop
// regains the prompt immediately while their exit statuses still get
// collected.
func (o *Orchestrator) detach(children ...*os.Process) {
	o.reapers.Add(1)

	go func() {
		defer o.reapers.Done()

		for _, child := range children {
			_, _ = child.Wait()
		}
	}()
}

func (o *Orchestrator) resolve(name string) (string, error) {
	look := o.LookPath
	if look == nil {
		look = exec.LookPath
	}

	path, err := look(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrExecutableNotFound)
	}

	return path, nil
}

func (o *Orchestrator) stdin() *os.File {
	if o.Stdin != nil {
		return o.Stdin
	}
	return os.Stdin
}

func (o *Orchestrator) stdout() *os.File {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o *Orchestrator) stderr() *os.File {
	if o.Stderr != nil {
		return o.Stderr
	}
	return os.Stderr
}

func (o *Orchestrator) fileMode() os.FileMode {
	if o.OutputFileMode != 0 {
		return o.OutputFileMode
	}
	return DefaultOutputFileMode
}

func closeAll(files []*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
