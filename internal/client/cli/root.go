package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/batyok32/shipyuusell-sub001/internal/client/config"
	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
	"github.com/batyok32/shipyuusell-sub001/internal/client/store"
)

// Root runs the interactive shell until the user exits. A session restored
// from the database is confirmed by loading the profile.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, titleStyle.Render("YuuSell Logistics")+" (type 'help' for commands)")

	if a.isLoggedIn() {
		if u, err := a.thunks.FetchProfile(ctx); err == nil {
			fmt.Fprintf(a.out, "Signed in as %s\n", u.Email)
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Countries prints the destination catalogue.
func (a *App) Countries(ctx context.Context) error {
	list, err := a.api.Logistics.Countries(ctx)
	if err != nil {
		return a.failed(err, describe(err, "Failed to load countries"))
	}
	writeCountries(a.out, list)
	return nil
}

// quoteOnce calculates and prints quotes without prompting.
func (a *App) quoteOnce(ctx context.Context, p models.QuoteParams) error {
	batch, err := a.thunks.CalculateQuotes(ctx, p)
	if err != nil {
		return a.failed(err, store.ErrorMessage(store.OpCalculateQuotes, err))
	}
	writeQuotes(a.out, *batch)
	return nil
}

// reportedError marks an error the command already printed.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// Execute builds the command tree and runs it with ctx. Errors the command
// did not print itself, such as bad flags or arguments, go to stderr.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	err := root.ExecuteContext(ctx)
	var shown reportedError
	if err != nil && !errors.As(err, &shown) {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return err
}

// NewRootCommand builds the yuusell command tree. Without a subcommand it
// starts the interactive shell.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "yuusell",
		Short: "Command-line client for YuuSell Logistics",
		Long: `yuusell quotes, books, pays for and tracks international shipments
on the YuuSell Logistics platform. Run it without a command for an
interactive shell.

Environment Variables:
  NEXT_PUBLIC_API_URL           Backend origin (default: http://localhost:8000)
  NEXT_PUBLIC_GOOGLE_CLIENT_ID  Google OAuth client id
  NEXT_PUBLIC_FACEBOOK_APP_ID   Facebook app id
  YUUSELL_DB                    Session database path (default: yuusell.db)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			a.Root(ctx)
			return nil
		}),
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newQuoteCommand(),
		&cobra.Command{
			Use:   "track <tracking-number>",
			Short: "Track a shipment by its tracking number",
			Args:  cobra.ExactArgs(1),
			RunE: withApp(func(ctx context.Context, a *App, args []string) error {
				return a.Track(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "countries",
			Short: "List supported countries",
			Args:  cobra.NoArgs,
			RunE:  withApp(noArgs((*App).Countries)),
		},
		&cobra.Command{
			Use:   "login",
			Short: "Sign in with email and password",
			Args:  cobra.NoArgs,
			RunE:  withApp(noArgs((*App).Login)),
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the stored session",
			Args:  cobra.NoArgs,
			RunE:  withApp(noArgs((*App).Logout)),
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the signed-in user and warehouse address",
			Args:  cobra.NoArgs,
			RunE:  withApp(noArgs((*App).Profile)),
		},
		&cobra.Command{
			Use:   "shipments",
			Short: "List your shipments",
			Args:  cobra.NoArgs,
			RunE:  withApp(noArgs((*App).Shipments)),
		},
		&cobra.Command{
			Use:   "packages",
			Short: "List your packages at the warehouse",
			Args:  cobra.NoArgs,
			RunE:  withApp(noArgs((*App).Packages)),
		},
		&cobra.Command{
			Use:   "buying",
			Short: "List your buy-and-ship requests",
			Args:  cobra.NoArgs,
			RunE:  withApp(noArgs((*App).Buying)),
		},
	)
	return root
}

func newQuoteCommand() *cobra.Command {
	var p models.QuoteParams
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Calculate shipping quotes for a route",
		Example: `  yuusell quote --from US --to GB --weight 2.5
  yuusell quote --from US --to DE --weight 10 --value 300`,
		Args: cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			p.OriginCountry = strings.ToUpper(p.OriginCountry)
			p.DestinationCountry = strings.ToUpper(p.DestinationCountry)
			return a.quoteOnce(ctx, p)
		}),
	}
	cmd.Flags().StringVar(&p.OriginCountry, "from", "", "origin country code")
	cmd.Flags().StringVar(&p.DestinationCountry, "to", "", "destination country code")
	cmd.Flags().Float64Var(&p.Weight, "weight", 0, "weight in kg")
	cmd.Flags().Float64Var(&p.DeclaredValue, "value", 0, "declared value in USD")
	return cmd
}

// withApp loads the configuration, opens the App for the duration of fn
// and closes it afterwards.
func withApp(fn func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := config.LoadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		a, err := NewApp(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := fn(ctx, a, args); err != nil {
			return reportedError{err}
		}
		return nil
	}
}

func noArgs(fn func(*App, context.Context) error) func(context.Context, *App, []string) error {
	return func(ctx context.Context, a *App, _ []string) error {
		return fn(a, ctx)
	}
}
