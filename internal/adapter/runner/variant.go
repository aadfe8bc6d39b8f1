package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/shlex"

	"gitlab.com/examproctor-2025.net/internal/config"
	"gitlab.com/examproctor-2025.net/internal/domain"
)

const compileTimeoutMessage = "Compilation Time Limit Exceeded"

// variant is one way of turning source into a running process
type variant interface {
	sourceFile() string
	run(ctx context.Context, ws *workspace, stdin string, limit int) domain.ExecutionResult
}

func newVariant(lang config.LanguageConfig, cfg *config.RunnerConfig) (variant, error) {
	if lang.SourceFile == "" {
		return nil, fmt.Errorf("source file name is required")
	}
	runTpl, err := splitTemplate(lang.RunCmd)
	if err != nil {
		return nil, fmt.Errorf("run command: %w", err)
	}
	if !lang.Compiled() {
		return &interpretedVariant{
			source:  lang.SourceFile,
			runTpl:  runTpl,
			timeout: cfg.InterpretedTimeout,
		}, nil
	}

	compileTpl, err := splitTemplate(lang.CompileCmd)
	if err != nil {
		return nil, fmt.Errorf("compile command: %w", err)
	}
	binary := lang.BinaryFile
	if binary == "" {
		binary = "main"
	}
	return &compiledVariant{
		source:         lang.SourceFile,
		binary:         binary,
		compileTpl:     compileTpl,
		runTpl:         runTpl,
		compileTimeout: cfg.CompileTimeout,
		runTimeout:     cfg.RunTimeout,
	}, nil
}

// splitTemplate tokenizes a command template once; placeholders are expanded per invocation
func splitTemplate(tpl string) ([]string, error) {
	if strings.TrimSpace(tpl) == "" {
		return nil, fmt.Errorf("command template is required")
	}
	fields, err := shlex.Split(tpl)
	if err != nil {
		return nil, fmt.Errorf("parse command template %q: %w", tpl, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("command template %q is empty", tpl)
	}
	return fields, nil
}

// expand substitutes {src} and {bin} with absolute workspace paths
func expand(tpl []string, src, bin string) []string {
	argv := make([]string, len(tpl))
	for i, field := range tpl {
		field = strings.ReplaceAll(field, "{src}", src)
		field = strings.ReplaceAll(field, "{bin}", bin)
		argv[i] = field
	}
	return argv
}

type compiledVariant struct {
	source         string
	binary         string
	compileTpl     []string
	runTpl         []string
	compileTimeout time.Duration
	runTimeout     time.Duration
}

func (v *compiledVariant) sourceFile() string { return v.source }

func (v *compiledVariant) run(ctx context.Context, ws *workspace, stdin string, limit int) domain.ExecutionResult {
	src, bin := ws.path(v.source), ws.path(v.binary)

	compiled := runProcess(ctx, processSpec{
		argv:    expand(v.compileTpl, src, bin),
		dir:     ws.dir,
		timeout: v.compileTimeout,
		limit:   limit,
	})
	switch {
	case compiled.startErr != nil:
		return domain.FailedResult(domain.ExecStatusInternalError, "", compiled.startErr.Error())
	case compiled.timedOut:
		return domain.FailedResult(domain.ExecStatusCompileError, "", compileTimeoutMessage)
	case compiled.exitCode != 0:
		msg := firstNonEmpty(compiled.stderr, compiled.stdout, domain.CompileErrorMessage)
		return domain.FailedResult(domain.ExecStatusCompileError, "", msg)
	}

	return toResult(runProcess(ctx, processSpec{
		argv:    expand(v.runTpl, src, bin),
		dir:     ws.dir,
		stdin:   stdin,
		timeout: v.runTimeout,
		limit:   limit,
	}))
}

type interpretedVariant struct {
	source  string
	runTpl  []string
	timeout time.Duration
}

func (v *interpretedVariant) sourceFile() string { return v.source }

func (v *interpretedVariant) run(ctx context.Context, ws *workspace, stdin string, limit int) domain.ExecutionResult {
	src := ws.path(v.source)
	return toResult(runProcess(ctx, processSpec{
		argv:    expand(v.runTpl, src, src),
		dir:     ws.dir,
		stdin:   stdin,
		timeout: v.timeout,
		limit:   limit,
	}))
}

// toResult maps a finished run step to the candidate-facing result
func toResult(out processOutcome) domain.ExecutionResult {
	switch {
	case out.startErr != nil:
		return domain.FailedResult(domain.ExecStatusInternalError, "", out.startErr.Error())
	case out.timedOut:
		return domain.FailedResult(domain.ExecStatusTimeLimitExceeded, "", domain.TimeLimitExceededMessage)
	case out.exitCode != 0:
		return domain.FailedResult(domain.ExecStatusRuntimeError, out.stdout,
			firstNonEmpty(out.stderr, domain.RuntimeErrorMessage))
	default:
		return domain.SuccessResult(out.stdout)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
