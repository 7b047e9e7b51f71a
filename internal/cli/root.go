package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/pidwait/internal/target"
	"github.com/Paintersrp/pidwait/internal/waiter"
)

const progName = "pidwait"

const longHelp = `Wait until all the specified processes have exited.

When possible, pidwait uses the ptrace(2) system call to wait for
processes. With ptrace(2) the '--sleep-interval' option is ignored, as
events are reported immediately. Additionally, if '--verbose' is given,
exit statuses and signals received by the processes are reported.

If ptrace(2) is not available, processes are checked periodically,
'--sleep-interval' is honored and '--verbose' does not report detailed
information about exit statuses and signals.`

func NewRootCmd() *cobra.Command {
	var (
		force    bool
		sleepArg string
		verbose  bool
	)

	root := &cobra.Command{
		Use:     "pidwait [flags] PID...",
		Short:   "Wait until all the specified processes have exited",
		Long:    longHelp,
		Version: buildVersion(),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, force, sleepArg, verbose)
		},
	}

	root.Flags().BoolVarP(&force, "force", "f", false, "do not fail if one of the specified PIDs does not correspond to a running process")
	root.Flags().StringVarP(&sleepArg, "sleep-interval", "s", sleepIntervalDefault(), "seconds between liveness checks when ptrace(2) is not available")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "display a message every time a process exits or receives a signal")

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root
}

func run(cmd *cobra.Command, args []string, force bool, sleepArg string, verbose bool) error {
	interval, err := parseInterval(sleepArg)
	if err != nil {
		return err
	}

	if len(args) == 0 && !force {
		return errors.New("missing PID")
	}

	pids := make([]int, 0, len(args))
	for _, arg := range args {
		pid, err := parsePID(arg)
		if err != nil {
			return err
		}
		pids = append(pids, pid)
	}

	set, refused, err := target.New(pids, os.Getpid(), force)
	if err != nil {
		return err
	}
	for _, pid := range refused {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d: refusing to trace self\n", progName, pid)
	}

	opts := waiter.Options{Tolerate: force, Interval: interval, Verbose: verbose}
	w := waiter.New(opts, progName, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return w.Run(set)
}

// Execute runs the CLI entrypoint. Every fatal condition surfaces here as a
// single returned error: it is printed once with the program prefix and the
// process exits non-zero.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", progName, err)
		os.Exit(1)
	}
}
