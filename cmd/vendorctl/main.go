package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"procurement/client/gateway"
	"procurement/client/session"
	"procurement/client/workflow"
	"procurement/config"
	"procurement/logging"
)

// errReported marks failures the user has already been told about.
var errReported = errors.New("reported")

type app struct {
	cfg    *config.ClientConfig
	logger *slog.Logger
	store  *session.Store
	gw     *gateway.Client
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func main() {
	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}
	var baseURL, tokenFile string
	var verbose bool

	root := &cobra.Command{
		Use:           "vendorctl",
		Short:         "Administer procurement vendors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadClientConfig()
			if err != nil {
				return err
			}
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}
			if tokenFile != "" {
				cfg.TokenFile = tokenFile
			}
			a.cfg = cfg

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			a.logger = logging.NewWithWriter(errOut, cfg.LogFormat, level)

			a.store, err = session.NewStore(cfg.TokenFile, cfg.Token)
			if err != nil {
				return err
			}
			a.gw = gateway.New(cfg.BaseURL, a.store,
				gateway.WithTimeout(cfg.Timeout),
				gateway.WithLogger(a.logger),
			)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (default $VENDORCTL_BASE_URL)")
	root.PersistentFlags().StringVar(&tokenFile, "token-file", "", "token file (default $VENDORCTL_TOKEN_FILE or the user config dir)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.listCmd(),
		a.createCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.itemsCmd(),
	)
	return root
}

// newWorkflow builds the vendor screen. Ctrl-C while a form is open cancels the form
// and abandons the prompt through cancelPrompt. Without confirm, deletes are declined.
func (a *app) newWorkflow(confirm workflow.Confirmer, cancelPrompt context.CancelFunc) *workflow.Workflow {
	notifier := printNotifier{out: a.errOut}
	list := workflow.NewList(a.gw, notifier, a.logger, a.cfg.PageSize)
	return workflow.New(a.gw, list, workflow.Options{
		Notifier:  notifier,
		Confirmer: confirm,
		Modal:     workflow.SignalModal{After: cancelPrompt},
		Logger:    a.logger,
	})
}

// promptConfirmer asks on the terminal before a vendor is deleted.
func (a *app) promptConfirmer(p *prompter) workflow.Confirmer {
	return workflow.ConfirmerFunc(func(ctx context.Context, name string) (bool, error) {
		fmt.Fprintln(a.out, "Delete Vendor")
		fmt.Fprintln(a.out, "Are you sure you want to delete this vendor? This action cannot be undone.")
		if name != "" {
			fmt.Fprintf(a.out, "  %s\n", name)
		}
		return p.confirm(ctx, "Delete", false)
	})
}

// assumeYes confirms every delete; it backs --yes.
var assumeYes = workflow.ConfirmerFunc(func(context.Context, string) (bool, error) { return true, nil })
