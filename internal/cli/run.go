package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/folio/pkg/config"
	"github.com/macropower/folio/pkg/host"
	"github.com/macropower/folio/pkg/log"
	"github.com/macropower/folio/pkg/mcp"
	"github.com/macropower/folio/pkg/paginator"
	"github.com/macropower/folio/pkg/paginator/widgets"
	"github.com/macropower/folio/pkg/source"
	"github.com/macropower/folio/pkg/ui"
	"github.com/macropower/folio/pkg/ui/theme"
)

const (
	cmdExamples = `  # Page through a file:
  folio ./access.log

  # Start on page 3 with 50 records per page:
  folio ./access.log --page 3 --rows 50

  # Follow a file as it grows:
  folio ./access.log --watch

  # Read from stdin:
  journalctl -b | folio -

  # Let agents drive the pager over MCP:
  folio ./access.log --serve-mcp localhost:8080

  # Export traces to a local collector:
  folio ./access.log --otlp-endpoint localhost:4317

  # Print a single page (disables TUI):
  folio ./access.log --page 2 > page.txt`
)

var (
	errNoInput         = errors.New("no input: pass a file path, or - to read stdin")
	errPageUnavailable = errors.New("page does not exist or was denied by policy")
)

type RunArgs struct {
	*RootArgs

	Path        string
	ConfigPath  string
	ServeMCP    string
	OTLP        string
	Rows        int
	Page        int
	Watch       bool
	WriteConfig bool
	ShowConfig  bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.ConfigPath, "config", "", "Path to the folio configuration file")
	cmd.Flags().StringVar(&ra.ServeMCP, "serve-mcp", "", "Serve the MCP server at the specified address")
	cmd.Flags().StringVar(&ra.OTLP, "otlp-endpoint", "", "Export traces to the OTLP/gRPC collector at the specified address")
	cmd.Flags().IntVarP(&ra.Rows, "rows", "n", 0, "Records per page, overrides the configured value")
	cmd.Flags().IntVarP(&ra.Page, "page", "p", 0, "Initial page")
	cmd.Flags().BoolVarP(&ra.Watch, "watch", "w", false, "Watch the file and reload on changes")
	cmd.Flags().BoolVar(&ra.WriteConfig, "write-config", false, "Write the default configuration files and exit")
	cmd.Flags().BoolVar(&ra.ShowConfig, "show-config", false, "Print the active configuration and exit")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

func NewRunCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "run [path]",
		Short:             "Default command, can be used explicitly if the path is ambiguous",
		Example:           cmdExamples,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: runCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ra.Path = args[0]
			}

			return run(cmd, ra)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func runCompletion(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}

	return nil, cobra.ShellCompDirectiveNoFileComp
}

func run(cmd *cobra.Command, ra *RunArgs) error {
	configPath := ra.ConfigPath
	if configPath == "" {
		configPath = config.GetPath()
	}

	err := config.WriteDefaultConfig(configPath, false)
	if err != nil {
		slog.Error("write default config", slog.Any("err", err))
	}

	if ra.WriteConfig {
		// Exit early after writing the default config.
		// Also, if there was an error, it should be fatal.
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	th := theme.New(cfg.UI.Theme)

	if ra.ShowConfig {
		return showConfig(cmd.OutOrStdout(), cfg, th, configPath)
	}

	shutdownTracing, err := setupTracing(cmd.Context(), ra.OTLP)
	if err != nil {
		return err
	}
	defer shutdownTracing()

	src, err := openSource(cmd, ra, cfg)
	if err != nil {
		return err
	}

	reg := paginator.NewRegistry()
	widgets.RegisterDefaults(reg, widgets.WithStyles(th.Components))

	p := paginator.New(cfg.Paginator.Build(src.Len(), ra.Rows), paginator.WithRegistry(reg))
	p.Render()

	ctrl := host.New(p, host.WithPolicy(cfg.Policy), host.WithSource(src))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if ra.Page > 0 && ra.Page != ctrl.Snapshot().State.Page {
		if !ctrl.RequestPage(ctx, ra.Page) {
			return fmt.Errorf("page %d: %w", ra.Page, errPageUnavailable)
		}
	}

	// If stdout is not a terminal, print the page.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return writePage(cmd.OutOrStdout(), ctrl.Snapshot())
	}

	logBuf := log.NewCircularBuffer(log.DefaultBufferCapacity)

	logHandler, err := log.CreateHandlerWithStrings(logBuf, ra.LogLevel, ra.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	slog.SetDefault(slog.New(logHandler))

	if ra.Watch {
		go func() {
			err := src.Watch(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("watch source", slog.Any("err", err))
			}
		}()

		go ctrl.Follow(ctx)
	}

	if ra.ServeMCP != "" {
		mcpServer := mcp.NewServer(ra.ServeMCP, ctrl)
		defer mcpServer.Close()

		go func() {
			err := mcpServer.Serve(ctx)
			if err != nil {
				slog.Error("MCP server failed", slog.Any("err", err))
			}
		}()
	}

	m := ui.NewModel(ctrl, cfg.UI, ui.WithTheme(th), ui.WithSourceName(src.Name()))

	var opts []tea.ProgramOption
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		opts = append(opts, tea.WithInputTTY())
	}

	_, err = ui.NewProgram(m, opts...).Run()
	if err != nil {
		slog.Error("run UI", slog.Any("err", err))
		flushLogs(cmd.ErrOrStderr(), logBuf)

		return fmt.Errorf("ui program failure: %w", err)
	}

	flushLogs(cmd.ErrOrStderr(), logBuf)

	return nil
}

func loadConfig(path string) (*config.Config, error) {
	colored := term.IsTerminal(int(os.Stderr.Fd()))

	cl, err := config.NewLoaderFromFile(path, config.WithColor(colored))
	if err != nil {
		slog.Warn("could not read config, using defaults", slog.Any("err", err))

		return config.NewConfig(), nil
	}

	err = cl.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	cfg, err := cl.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	return cfg, nil
}

func showConfig(w io.Writer, cfg *config.Config, th *theme.Theme, path string) error {
	slog.Info("active configuration", slog.String("path", path))

	yamlBytes, err := cfg.MarshalYAML()
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	err = quick.Highlight(w, string(yamlBytes), "yaml", "terminal256", th.Name)
	if err != nil {
		mustN(fmt.Fprintln(w, string(yamlBytes)))

		return fmt.Errorf("highlight config: %w", err)
	}

	return nil
}

func openSource(cmd *cobra.Command, ra *RunArgs, cfg *config.Config) (*source.Source, error) {
	path := ra.Path
	if path == "" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errNoInput
		}

		path = "-"
	}

	if path == "-" {
		if ra.Watch {
			slog.Warn("stdin cannot be watched, ignoring --watch")
			ra.Watch = false
		}

		src, err := source.NewReader("stdin", cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("create source: %w", err)
		}

		return src, nil
	}

	src, err := source.NewFile(path, source.WithReload(cfg.Source.Reload))
	if err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}

	return src, nil
}

func writePage(w io.Writer, snap host.Snapshot) error {
	for _, r := range snap.Records {
		_, err := fmt.Fprintln(w, r)
		if err != nil {
			return fmt.Errorf("write to stdout: %w", err)
		}
	}

	return nil
}

func flushLogs(w io.Writer, buf *log.CircularBuffer) {
	slog.Debug("flush logs to console",
		slog.Int("count", buf.Size()),
		slog.Int("max", buf.Capacity()),
	)

	_, err := buf.WriteTo(w)
	if err != nil {
		panic(err)
	}
}
