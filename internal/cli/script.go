package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	cliadapter "github.com/example/routesim/internal/adapters/cli"
	"github.com/example/routesim/internal/adapters/input"
	"github.com/example/routesim/internal/config"
	"github.com/example/routesim/internal/ports/primary"
)

const (
	flagReadAll = "read-all"
	flagLimited = "limited"
	stdinArg    = "-"
)

// addReadModeFlags registers the flags that pick how many command lines are read.
func addReadModeFlags(fs *pflag.FlagSet) {
	fs.Bool(flagReadAll, false, "Read commands to EOF, ignoring the header's action count")
	fs.Bool(flagLimited, false, "Read at most the header's action count of commands")
}

// readMode picks the read mode for one source. Stdin honors the header's
// action count and files are read to EOF unless configured otherwise.
func readMode(cfg *config.Config, fromStdin bool) input.ReadMode {
	if cfg.ReadMode != "" {
		return input.ReadMode(cfg.ReadMode)
	}
	if fromStdin {
		return input.ReadLimited
	}
	return input.ReadAll
}

// loadJobs parses every script named in args ("-" or no args for stdin).
// All scripts are validated before any simulation starts.
func loadJobs(args []string, stdin io.Reader, cfg *config.Config) ([]cliadapter.Job, error) {
	if len(args) == 0 {
		args = []string{stdinArg}
	}

	jobs := make([]cliadapter.Job, 0, len(args))
	sawStdin := false
	for _, arg := range args {
		var (
			job cliadapter.Job
			err error
		)
		if arg == stdinArg {
			if sawStdin {
				return nil, fmt.Errorf("stdin can only be read once")
			}
			sawStdin = true
			job, err = parseJob("stdin", stdin, readMode(cfg, true))
		} else {
			job, err = loadFileJob(arg, cfg)
		}
		if err != nil {
			if len(args) > 1 {
				return nil, fmt.Errorf("%s: %w", job.Name, err)
			}
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func loadFileJob(path string, cfg *config.Config) (cliadapter.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return cliadapter.Job{Name: path}, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	return parseJob(path, f, readMode(cfg, false))
}

func parseJob(name string, r io.Reader, mode input.ReadMode) (cliadapter.Job, error) {
	job := cliadapter.Job{Name: name}

	script, err := input.ReadScript(r, mode)
	if err != nil {
		return job, err
	}

	job.Request = primary.SimulationRequest{
		DeclaredRoutes: script.DeclaredRoutes,
		Capacities:     script.Capacities,
		Commands:       script.Commands,
	}
	return job, nil
}
