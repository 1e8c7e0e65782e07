package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/phyten/hatchgate/internal/cache"
	"github.com/phyten/hatchgate/internal/config"
	"github.com/phyten/hatchgate/internal/escapes"
	engineopts "github.com/phyten/hatchgate/internal/escapes/opts"
	"github.com/phyten/hatchgate/internal/output"
	"github.com/phyten/hatchgate/internal/termcolor"
	"github.com/phyten/hatchgate/internal/util"
	"github.com/phyten/hatchgate/internal/watch"
)

const (
	exitPassed   = 0
	exitFindings = 1
	exitUsage    = 2
)

// cliEnv は main から注入される入出力と環境です。
type cliEnv struct {
	stdout  io.Writer
	stderr  io.Writer
	getenv  func(string) string
	environ []string
}

func main() {
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], cliEnv{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		getenv:  os.Getenv,
		environ: os.Environ(),
	})
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, env cliEnv) int {
	errLog := log.New(env.stderr, "hatchgate: ", 0)
	if len(args) > 0 {
		switch args[0] {
		case "check":
			args = args[1:]
		case "patterns":
			return runPatterns(args[1:], env, errLog)
		case "help":
			printUsage(env.stdout)
			return exitPassed
		}
	}

	ca, err := parseCheckArgs(args)
	if err != nil {
		errLog.Print(err)
		printUsage(env.stderr)
		return exitUsage
	}
	if ca.showHelp {
		printUsage(env.stdout)
		return exitPassed
	}

	r, err := loadSettings(ca.configPath, ca.engine, ca.project, env)
	if err != nil {
		errLog.Print(err)
		return exitUsage
	}
	o := r.opts
	logger := slog.New(slog.NewTextHandler(env.stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	o.Logger = logger
	if r.configPath != "" {
		logger.Debug("config loaded", "path", r.configPath)
	}
	o.Progress = util.ShouldShowProgress(o.Progress, ca.noProgress)

	stdout, _ := env.stdout.(*os.File)
	mode, err := termcolor.ParseMode(r.engine.Color)
	if err != nil {
		errLog.Print(err)
		return exitUsage
	}
	textOpts := output.TextOptions{
		Color: termcolor.Detect(mode, stdout, termcolor.EnvMap(env.environ)),
		Width: terminalWidth(stdout),
	}

	if ca.watch {
		return runWatch(ctx, o, r.engine.Output, textOpts, env, logger, errLog)
	}

	res, err := escapes.Run(ctx, o)
	if err != nil {
		errLog.Print(err)
		return exitUsage
	}
	if err := output.Render(env.stdout, r.engine.Output, res, textOpts); err != nil {
		errLog.Print(err)
		return exitUsage
	}
	if !res.Passed() {
		return exitFindings
	}
	return exitPassed
}

type settings struct {
	opts       escapes.Options
	engine     config.EngineSettings
	file       config.Config
	configPath string
}

// loadSettings merges defaults, the config file, HATCHGATE_* and flags, in that order.
func loadSettings(configPath string, engineFlags config.EngineConfig, projectFlags config.ProjectConfig, env cliEnv) (settings, error) {
	getenv := env.getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	envCfg, err := config.FromEnv(getenv)
	if err != nil {
		return settings{}, err
	}

	repo := "."
	if envCfg.Engine.Repo != nil {
		repo = *envCfg.Engine.Repo
	}
	if engineFlags.Repo != nil {
		repo = *engineFlags.Repo
	}
	explicit := configPath
	if explicit == "" {
		explicit = getenv(config.EnvPrefix + "CONFIG")
	}
	path, _, err := config.Find(repo, explicit, getenv("XDG_CONFIG_HOME"), getenv("HOME"))
	if err != nil {
		return settings{}, err
	}
	var fileCfg config.Config
	if path != "" {
		fileCfg, err = config.Load(path)
		if err != nil {
			return settings{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	base := config.EngineSettingsFromOptions(engineopts.Defaults("."))
	eng, err := config.NormalizeEngine(config.MergeEngine(base, fileCfg.Engine, envCfg.Engine, engineFlags))
	if err != nil {
		return settings{}, err
	}
	proj, err := config.NormalizeProject(config.MergeProject(config.ProjectSettings{}, fileCfg.Project, envCfg.Project, projectFlags))
	if err != nil {
		return settings{}, err
	}

	o := engineopts.Defaults(eng.Repo)
	eng.ApplyToOptions(&o)
	proj.ApplyToOptions(&o)
	o.Languages = fileCfg.ResolveLanguages()
	o.Global = fileCfg.Escapes.Patterns
	if err := engineopts.NormalizeAndValidate(&o); err != nil {
		return settings{}, err
	}
	return settings{opts: o, engine: eng, file: fileCfg, configPath: path}, nil
}

func runWatch(ctx context.Context, o escapes.Options, format string, textOpts output.TextOptions, env cliEnv, logger *slog.Logger, errLog *log.Logger) int {
	o.Cache = cache.New[escapes.FileReport]()
	o.Progress = false
	clearScreen := format == "text" && textOpts.Color.Enabled

	err := watch.Run(ctx, watch.Options{Root: o.Root, Logger: logger}, func(ctx context.Context) {
		res, err := escapes.Run(ctx, o)
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("check failed", "err", err)
			}
			return
		}
		if clearScreen {
			_, _ = io.WriteString(env.stdout, "\x1b[H\x1b[2J")
		}
		if err := output.Render(env.stdout, format, res, textOpts); err != nil {
			logger.Error("render failed", "err", err)
		}
		hits, misses := o.Cache.Stats()
		logger.Debug("check done", "findings", len(res.Findings), "cache_hits", hits, "cache_misses", misses)
	})
	if err != nil {
		errLog.Print(err)
		return exitUsage
	}
	return exitPassed
}

func terminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}
