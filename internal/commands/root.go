package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/spf13/cobra"
)

// Opener builds the service container a command runs against. The returned
// func releases whatever the container holds open.
type Opener func(ctx context.Context) (*portssvc.ServiceContainer, func(), error)

type rootOptions struct {
	open   Opener
	actor  string
	asJSON bool
}

// NewRootCommand creates the maintenance CLI with all subcommands registered.
// defaultActor is recorded on everything the tools write unless --actor is given.
func NewRootCommand(open Opener, defaultActor string) *cobra.Command {
	opts := &rootOptions{open: open}

	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Maintenance tools for the institute ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.actor, "actor", defaultActor, "user id recorded as creator of written rows")
	rootCmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print results as JSON")

	rootCmd.AddCommand(
		newSetupChartCommand(opts),
		newRebuildBalancesCommand(opts),
		newVerifyBalancesCommand(opts),
		newAttachParentsCommand(opts),
		newReconcileCommand(opts),
	)

	return rootCmd
}

// withServices opens the container for the duration of fn.
func (o *rootOptions) withServices(cmd *cobra.Command, fn func(svc *portssvc.ServiceContainer) error) error {
	svc, closeFn, err := o.open(cmd.Context())
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer closeFn()
	return fn(svc)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
