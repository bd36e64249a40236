package shell

import (
	"errors"
	"fmt"
	"strings"
)

// Operator tokens recognized by the classifier. Exact standalone matches
// only; no prefix or embedded forms.
const (
	opBackground  = "&"
	opRedirectOut = ">"
	opAppendOut   = ">>"
	opRedirectIn  = "<"
	opPipe        = "|"
)

var (
	// ErrMalformed is matched by every MalformedOperatorError via errors.Is.
	ErrMalformed = errors.New("malformed operator")

	// ErrEmptyCommand is returned for an empty token sequence. Callers
	// treat it as a no-op rather than an error worth reporting.
	ErrEmptyCommand = errors.New("empty command")
)

// MalformedOperatorError reports an operator that can't be realized, such
// as a trailing ">" with no target or a second pipe on the same line. A
// line that fails classification creates zero processes.
type MalformedOperatorError struct {
	Token  string
	Reason string
}

func (e *MalformedOperatorError) Error() string {
	return fmt.Sprintf("syntax error near %q: %s", e.Token, e.Reason)
}

func (e *MalformedOperatorError) Is(target error) bool {
	return target == ErrMalformed
}

func malformed(token, reason string) error {
	return &MalformedOperatorError{Token: token, Reason: reason}
}

// Redirect names a file standing in for a standard stream. Append is only
// meaningful for output redirects.
type Redirect struct {
	Path   string
	Append bool
}

// Stage is one command segment: the program, its arguments, and any file
// redirections bound to its streams.
type Stage struct {
	Argv   []string
	Input  *Redirect
	Output *Redirect
}

// Plan is the classified form of one input line, consumed exactly once by
// the orchestrator. It carries no OS resources and no cross-line state.
type Plan struct {
	Stage

	// Background detaches the command from the interactive loop.
	Background bool

	// Pipe is the second pipeline stage, if a pipe operator was present.
	// The design is fixed at a single pipe: the left stage's stdout and
	// the right stage's stdin always belong to the pipe.
	Pipe *Stage
}

// Classify partitions a token sequence into a Plan.
//
// It is a pure function: no files are opened and no pipes are created here;
// realizing the plan is entirely the orchestrator's job. Any operator
// lacking its required operand fails with a MalformedOperatorError and the
// line must not be executed.
func Classify(tokens []string) (*Plan, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyCommand
	}

	plan := &Plan{}

	// "&" is recognized only as the final token of the line and applies
	// to the whole job, pipeline included.
	if tokens[len(tokens)-1] == opBackground {
		plan.Background = true
		tokens = tokens[:len(tokens)-1]
		if len(tokens) == 0 {
			return nil, malformed(opBackground, "missing command")
		}
	}

	left, rest, err := classifyStage(tokens, true)
	if err != nil {
		return nil, err
	}
	if len(left.Argv) == 0 {
		if rest != nil {
			return nil, malformed(opPipe, "missing command before pipe")
		}
		return nil, malformed("", "missing command name")
	}
	plan.Stage = left

	if rest != nil {
		right, _, err := classifyStage(rest, false)
		if err != nil {
			return nil, err
		}
		if len(right.Argv) == 0 {
			return nil, malformed(opPipe, "missing command after pipe")
		}

		// The pipe owns the left stage's stdout and the right stage's
		// stdin; explicit redirects on those streams lose the tie-break.
		left.Output = nil
		right.Input = nil

		plan.Stage = left
		plan.Pipe = &right
	}

	return plan, nil
}

// classifyStage scans one command segment. When allowPipe is set and a pipe
// operator is found, the unscanned remainder is returned for the caller to
// classify as the second stage.
func classifyStage(tokens []string, allowPipe bool) (Stage, []string, error) {
	var stage Stage

	for i := 0; i < len(tokens); i++ {
		switch tok := tokens[i]; tok {
		case opRedirectOut, opAppendOut:
			path, err := redirectTarget(tokens, i)
			if err != nil {
				return stage, nil, err
			}
			stage.Output = &Redirect{Path: path, Append: tok == opAppendOut}
			i++

		case opRedirectIn:
			path, err := redirectTarget(tokens, i)
			if err != nil {
				return stage, nil, err
			}
			stage.Input = &Redirect{Path: path}
			i++

		case opPipe:
			if !allowPipe {
				return stage, nil, malformed(opPipe, "only one pipe is supported per line")
			}
			if i+1 >= len(tokens) {
				return stage, nil, malformed(opPipe, "missing command after pipe")
			}
			return stage, tokens[i+1:], nil

		case opBackground:
			return stage, nil, malformed(opBackground, "only allowed at the end of a line")

		default:
			stage.Argv = append(stage.Argv, tok)
		}
	}

	return stage, nil, nil
}

func redirectTarget(tokens []string, i int) (string, error) {
	op := tokens[i]
	if i+1 >= len(tokens) {
		return "", malformed(op, "missing redirection target")
	}
	if target := tokens[i+1]; !isOperator(target) {
		return target, nil
	}
	return "", malformed(op, "redirection target must be a file name")
}

func isOperator(tok string) bool {
	switch tok {
	case opBackground, opRedirectOut, opAppendOut, opRedirectIn, opPipe:
		return true
	}
	return false
}

// String renders the plan for diagnostics and golden tests.
func (p *Plan) String() string {
	var b strings.Builder

	writeStage(&b, "stage", &p.Stage)
	if p.Pipe != nil {
		writeStage(&b, "pipe", p.Pipe)
	}
	fmt.Fprintf(&b, "background: %v\n", p.Background)

	return b.String()
}

func writeStage(b *strings.Builder, name string, stage *Stage) {
	fmt.Fprintf(b, "%s: %s\n", name, strings.Join(stage.Argv, " "))
	if stage.Input != nil {
		fmt.Fprintf(b, "  stdin: %s\n", stage.Input.Path)
	}
	if stage.Output != nil {
		mode := "truncate"
		if stage.Output.Append {
			mode = "append"
		}
		fmt.Fprintf(b, "  stdout: %s (%s)\n", stage.Output.Path, mode)
	}
}
