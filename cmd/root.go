//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timburks/kestrel/internal/config"
	"github.com/timburks/kestrel/internal/logger"
	"github.com/timburks/kestrel/pkg/commander"
	"github.com/timburks/kestrel/pkg/editor"
	"github.com/timburks/kestrel/pkg/types"
)

var version = "dev"

type options struct {
	configFile string
	script     string
	debug      bool
}

// NewRootCommand builds the kestrel command.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "kestrel [file]",
		Short:         "A small modal text editor for the terminal",
		Long:          `kestrel edits one file in the terminal. Press i to insert text, Esc to stop, s to save and q to quit.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args)
		},
	}
	rootCmd.Flags().StringVarP(&opts.configFile, "config", "c", "",
		"config file (default: ~/.config/kestrel/config.yaml)")
	rootCmd.Flags().StringVarP(&opts.script, "eval", "e", "",
		"run a lisp script against the file instead of opening the terminal")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false,
		"show input events in the message bar and log at debug level")
	return rootCmd
}

// Execute runs the root command and exits with a non-zero status on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kestrel:", err)
		os.Exit(1)
	}
}

func run(opts *options, args []string) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	if opts.debug {
		cfg.Debug = true
		cfg.Log.Level = "debug"
	}
	logger.Init(logger.Options{
		Path:       cfg.Log.File,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	defer logger.Close()

	e, c := setup(cfg, args)
	if opts.script != "" {
		return runScript(c, opts.script)
	}
	return runTerminal(e, c, newTerminal)
}

func setup(cfg config.Config, args []string) (*editor.Editor, *commander.Commander) {
	e := editor.NewEditor()
	e.GetWindow().SetFiller(cfg.FillerRune())
	if len(args) > 0 {
		e.ReadFile(args[0])
	}
	e.GetBuffer().Debug = cfg.Debug
	c := commander.NewCommander(e)
	c.SetDebug(cfg.Debug)
	logger.Info("starting", "file", e.GetBuffer().FileName(), "rows", e.GetBuffer().Height())
	return e, c
}

func runScript(c *commander.Commander, path string) error {
	result, err := c.ParseEvalFile(path)
	if err != nil {
		logger.Error("script failed", "script", path, "err", err)
		return fmt.Errorf("evaluating %s: %w", path, err)
	}
	fmt.Println(result)
	return nil
}

// A terminal renders frames and blocks for input.
type terminal interface {
	Render(e *editor.Editor, c *commander.Commander)
	GetNextEvent() *types.Event
	Close()
}

// runTerminal claims the terminal and runs the main loop until quit.
// The deferred Close restores the terminal on every return and on panics.
func runTerminal(e *editor.Editor, c *commander.Commander, open func() (terminal, error)) error {
	t, err := open()
	if err != nil {
		return err
	}
	defer t.Close()

	for c.IsRunning() {
		t.Render(e, c)
		if err := c.ProcessEvent(t.GetNextEvent()); err != nil {
			logger.Warn("command failed", "err", err)
		}
	}
	logger.Info("exiting", "modified", e.GetBuffer().Modified())
	return nil
}
