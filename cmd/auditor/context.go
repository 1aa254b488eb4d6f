package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"

	"relocation_quest/internal/audit"
	"relocation_quest/internal/config"
	"relocation_quest/internal/domain"
	"relocation_quest/internal/logging"
	"relocation_quest/internal/storage/postgres"
)

const (
	sourceName = "V1"
	targetName = "V2"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
	logger     *slog.Logger

	mu  sync.Mutex
	dbs map[string]*sqlx.DB
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		dbs:          make(map[string]*sqlx.DB),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(*c.configFlag)
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		level := cfg.LogLevel
		if c.logLevelFlag != nil && *c.logLevelFlag != "" {
			level = *c.logLevelFlag
		}
		c.logger = logging.New(level, os.Stderr)
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) log() *slog.Logger {
	if c.logger == nil {
		return logging.Discard()
	}
	return c.logger
}

// database returns a pool for dsn, opened on first use. Connections are
// lazy so an unreachable instance shows up as check errors.
func (c *commandContext) database(name, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%s database url: %w", name, domain.ErrConfigMissing)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if db, ok := c.dbs[name]; ok {
		return db, nil
	}
	db, err := postgres.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	c.log().Info("opened database", "instance", name, "host", postgres.HostOf(dsn))
	c.dbs[name] = db
	return db, nil
}

func (c *commandContext) sourceDB() (*sqlx.DB, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return c.database(sourceName, cfg.Migration.Source.DSN())
}

func (c *commandContext) targetDB() (*sqlx.DB, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return c.database(targetName, cfg.TargetDSN())
}

func (c *commandContext) sourceInstance() (audit.Instance, error) {
	db, err := c.sourceDB()
	if err != nil {
		return audit.Instance{}, err
	}
	return audit.Instance{
		Name:      sourceName,
		Catalog:   postgres.NewCatalog(db),
		Partition: c.config.Partition(),
	}, nil
}

func (c *commandContext) targetInstance() (audit.Instance, error) {
	db, err := c.targetDB()
	if err != nil {
		return audit.Instance{}, err
	}
	return audit.Instance{
		Name:    targetName,
		Catalog: postgres.NewCatalog(db),
	}, nil
}

// instances resolves the --instance flag value.
func (c *commandContext) instances(which string) ([]audit.Instance, error) {
	var names []string
	switch strings.ToLower(strings.TrimSpace(which)) {
	case "", "both":
		names = []string{sourceName, targetName}
	case "v1", "source":
		names = []string{sourceName}
	case "v2", "target":
		names = []string{targetName}
	default:
		return nil, fmt.Errorf("unknown instance %q (want v1, v2 or both)", which)
	}

	out := make([]audit.Instance, 0, len(names))
	for _, name := range names {
		var inst audit.Instance
		var err error
		if name == sourceName {
			inst, err = c.sourceInstance()
		} else {
			inst, err = c.targetInstance()
		}
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

func (c *commandContext) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, db := range c.dbs {
		_ = db.Close()
		delete(c.dbs, name)
	}
}
