package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"rudder/internal/config"
	"rudder/internal/dispatch"
	"rudder/internal/domain"
	"rudder/internal/tooling"
)

// buildMeta holds version and build metadata (injectable via ldflags).
type buildMeta struct {
	Version string
	GoOS    string
	GoArch  string
}

func newBuildMeta(version, goos, goarch string) buildMeta {
	if goos == "" {
		goos = runtime.GOOS
	}
	if goarch == "" {
		goarch = runtime.GOARCH
	}
	return buildMeta{Version: version, GoOS: goos, GoArch: goarch}
}

func (m buildMeta) String() string {
	return fmt.Sprintf("rudder %s %s/%s", m.Version, m.GoOS, m.GoArch)
}

func newRootCommand(bm buildMeta) *cobra.Command {
	root := &cobra.Command{
		Use:   "rudder",
		Short: "Completion-response command dispatcher",
		Long:  "Rudder turns model tool-call responses into typed, validated commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), bm.String())
				return nil
			}
			return cmd.Help()
		},
	}
	root.Flags().BoolP("version", "V", false, "print version and build metadata")
	root.PersistentFlags().StringP("config", "c", "rudder.json", "path to the config file")

	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a completion-response JSON file (or stdin) into commands",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runParse,
	}
	root.AddCommand(parseCmd)

	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the static tool definitions sent to the LLM",
		RunE:  runTools,
	}
	toolsCmd.AddCommand(&cobra.Command{
		Use:   "allow <name>",
		Short: "Add an external tool to the dispatch allowlist",
		Args:  cobra.ExactArgs(1),
		RunE:  runToolsAllow,
	})
	toolsCmd.AddCommand(&cobra.Command{
		Use:   "disallow <name>",
		Short: "Remove an external tool from the dispatch allowlist",
		Args:  cobra.ExactArgs(1),
		RunE:  runToolsDisallow,
	})
	root.AddCommand(toolsCmd)

	return root
}

// loadConfig reads the config at the --config path. A missing file is not an
// error; the built-in defaults apply.
func loadConfig(cmd *cobra.Command) (*domain.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// buildLogger constructs a slog logger per the infra config.
func buildLogger(infra domain.InfraConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(infra.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if infra.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// commandEnvelope pairs a command with its kind discriminator for output.
type commandEnvelope struct {
	Kind    domain.CommandKind `json:"kind"`
	Command domain.Command     `json:"command"`
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := buildLogger(cfg.Infra, cmd.ErrOrStderr())

	var data []byte
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var resp domain.CompletionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	d := dispatch.NewDispatcher(tooling.NewRegistry(), dispatch.WithLogger(logger))
	commands, err := d.Dispatch(&resp, cfg.ExternalTools)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	for _, c := range commands {
		if err := enc.Encode(commandEnvelope{Kind: c.Kind(), Command: c}); err != nil {
			return err
		}
	}
	return nil
}

func runToolsAllow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.AddExternalTool(cfg, args[0]); err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("config")
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "allowed external tool %q\n", args[0])
	return nil
}

func runToolsDisallow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	config.RemoveExternalTool(cfg, args[0])
	path, _ := cmd.Flags().GetString("config")
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed external tool %q\n", args[0])
	return nil
}

func runTools(cmd *cobra.Command, args []string) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(tooling.NewRegistry().Definitions())
}

func getVersion() string {
	if version != "" {
		return version
	}
	b, err := os.ReadFile("VERSION")
	if err != nil {
		return "dev"
	}
	return strings.TrimSpace(string(b))
}

// version is set at build time via ldflags for build metadata, e.g.:
//
//	go build -ldflags "-X main.version=1.0.0" -o rudder ./cmd/rudder
var version string

func runApp(args []string) int {
	bm := newBuildMeta(version, "", "")
	if bm.Version == "" {
		bm.Version = getVersion()
	}
	root := newRootCommand(bm)
	root.SetArgs(args[1:])
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
