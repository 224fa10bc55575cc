package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/presets"
	"scribe/internal/queue"
)

type commandContext struct {
	configFlag *string
	presetFlag *string
	debugFlag  *bool

	// errWriter supplies the command's error stream for resolver
	// diagnostics; nil falls back to stderr.
	errWriter func() io.Writer

	overrides map[string]string

	configOnce sync.Once
	config     *config.Config
	settings   *config.Settings
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, presetFlag *string, debugFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		presetFlag: presetFlag,
		debugFlag:  debugFlag,
		overrides:  map[string]string{},
	}
}

// setOverride records a command-line setting. Call before ensureConfig.
func (c *commandContext) setOverride(key, value string) {
	c.overrides[key] = value
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		sources, err := c.buildSources()
		if err != nil {
			c.configErr = err
			return
		}

		resolver := config.NewResolver(c.resolverLogger())
		settings := resolver.Resolve(sources, c.debug())

		cfg, err := config.BuildConfig(settings)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.settings = settings
	})
	return c.config, c.configErr
}

func (c *commandContext) buildSources() ([]config.Source, error) {
	var extra []config.Source
	if name := c.presetName(); name != "" {
		file, err := presets.Load(presets.DefaultPath())
		if err != nil {
			return nil, err
		}
		source, err := file.Source(name)
		if err != nil {
			return nil, err
		}
		extra = append(extra, source)
	}

	projectPath := ""
	if c.configFlag != nil {
		projectPath = strings.TrimSpace(*c.configFlag)
	}
	if projectPath == "" {
		return config.StandardSources(c.overrides, extra...)
	}

	expanded, err := config.ExpandPath(projectPath)
	if err != nil {
		return nil, err
	}
	userPath, err := config.DefaultUserConfigPath()
	if err != nil {
		return nil, err
	}
	sources := []config.Source{
		config.FileSource(expanded),
		config.FileSource(userPath),
		config.EnvSource(config.KnownKeys()...),
	}
	sources = append(sources, extra...)
	if len(c.overrides) > 0 {
		sources = append(sources, config.Values("flags", c.overrides))
	}
	return sources, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	var loggerErr error
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			loggerErr = err
			return
		}
		c.logger = logger
	})
	if loggerErr != nil {
		return nil, loggerErr
	}
	return c.logger, nil
}

func (c *commandContext) withStore(fn func(*queue.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := queue.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func (c *commandContext) presetName() string {
	if c.presetFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.presetFlag)
}

func (c *commandContext) debug() bool {
	return c.debugFlag != nil && *c.debugFlag
}

// resolverLogger builds the side channel for resolution diagnostics. It is
// always handed to the resolver: the resolver itself stays silent unless
// diagnostic mode is active, which the LOG_LEVEL=debug sentinel can trigger
// mid-pass without the --debug flag.
func (c *commandContext) resolverLogger() *slog.Logger {
	writer := io.Writer(os.Stderr)
	if c.errWriter != nil {
		if w := c.errWriter(); w != nil {
			writer = w
		}
	}
	logger, err := logging.New(logging.Options{Level: "debug", Writer: writer})
	if err != nil {
		return nil
	}
	return logger
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
