package setup

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/robotika/internal/flagx"
	"github.com/dmitrijs2005/robotika/internal/logging"
	"github.com/dmitrijs2005/robotika/internal/server/config"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/robotika/internal/server/services"
)

type options struct {
	genSecret bool
	only      string
}

func parseOptions(args []string) (*options, error) {
	o := &options{}

	fs := flag.NewFlagSet("setup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&o.genSecret, "gen-secret", false, "print a new signing secret and exit")
	fs.StringVar(&o.only, "u", "", "provision only this username")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-gen-secret", "-u"})); err != nil {
		return nil, err
	}
	return o, nil
}

func selectAccounts(only string) ([]Account, error) {
	if only == "" {
		return DefaultAccounts, nil
	}
	for _, a := range DefaultAccounts {
		if a.UserName == only {
			return []Account{a}, nil
		}
	}
	return nil, fmt.Errorf("unknown account %q", only)
}

// Test seams.
var (
	openDB     = repomanager.Open
	newManager = repomanager.NewPostgresRepositoryManager
	newCreator = func(db *sql.DB, m repomanager.RepositoryManager) UserCreator {
		return services.NewUserService(db, m, nil)
	}
	newPrompter = func() PasswordPrompter { return NewTerminalPrompter() }
)

// Command runs the setup tool. Database settings come from the same sources
// the server reads; the signing secret is not needed here.
func Command(ctx context.Context, args []string, lookup func(string) (string, bool), out io.Writer, l logging.Logger) error {
	o, err := parseOptions(args)
	if err != nil {
		return err
	}

	if o.genSecret {
		s, err := GenerateSecret()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, s)
		return err
	}

	accounts, err := selectAccounts(o.only)
	if err != nil {
		return err
	}

	cfg, err := config.Load(args, lookup)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("database DSN is required")
	}

	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	m := newManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	r := &Runner{
		Users:    newCreator(db, m),
		Prompter: newPrompter(),
		Lookup:   lookup,
		Logger:   l,
		Accounts: accounts,
	}
	return r.Run(ctx)
}
