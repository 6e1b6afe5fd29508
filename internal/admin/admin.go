// Package admin implements recipex-admin, the operator tool: it mints caller
// tokens, applies database migrations and checks that a server answers.
package admin

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/rpcapi"
	"github.com/dmitrijs2005/recipex/internal/server/auth"
	"github.com/dmitrijs2005/recipex/internal/server/config"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/repomanager"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// openDB is a test seam for repomanager.OpenPostgres.
var openDB = repomanager.OpenPostgres

type migrator interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	MigrationStatus(ctx context.Context, db *sql.DB) error
}

var newMigrator = func() migrator { return repomanager.NewPostgresRepositoryManager() }

// NewRootCmd builds the command tree. Output goes to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	defaults := &config.Config{}
	defaults.LoadDefaults()

	root := &cobra.Command{
		Use:           "recipex-admin",
		Short:         "RecipeX administration tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(tokenCmd(defaults))
	root.AddCommand(migrateCmd(defaults))
	root.AddCommand(pingCmd(defaults))
	return root
}

func tokenCmd(defaults *config.Config) *cobra.Command {
	var (
		email  string
		secret string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for a caller",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" {
				return fmt.Errorf("%w: email", common.ErrorMissingField)
			}
			if secret == "" {
				s, err := promptSecret(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				secret = s
			}

			tok, err := auth.GenerateToken(email, []byte(secret), ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "caller email")
	cmd.Flags().StringVarP(&secret, "secret", "s", "", "JWT secret; prompted when empty")
	cmd.Flags().DurationVarP(&ttl, "ttl", "t", defaults.AccessTokenValidityDuration, "token validity")
	return cmd
}

func promptSecret(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Enter JWT secret: "); err != nil {
		return "", err
	}
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(string(b))
	clear(b)
	if s == "" {
		return "", fmt.Errorf("%w: secret", common.ErrorMissingField)
	}
	return s, nil
}

func migrateCmd(defaults *config.Config) *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.PersistentFlags().StringVarP(&dsn, "dsn", "d", defaults.DatabaseDSN, "PostgreSQL DSN")

	run := func(apply func(migrator, context.Context, *sql.DB) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			db, err := openDB(ctx, dsn)
			if err != nil {
				return err
			}
			defer db.Close()
			return apply(newMigrator(), ctx, db)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE:  run(migrator.RunMigrations),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  run(migrator.MigrationStatus),
	})
	return cmd
}

func pingCmd(defaults *config.Config) *cobra.Command {
	var (
		addr    string
		token   string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Call Hello on a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			ctx = metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, token)

			env, err := rpcapi.NewClient(conn).Hello(ctx, &rpcapi.Void{})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", env.Code, env.Message)
			return err
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", defaults.EndpointAddrGRPC, "server gRPC address")
	cmd.Flags().StringVarP(&token, "token", "k", "", "access token")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "call timeout")
	return cmd
}
