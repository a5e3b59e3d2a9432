package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/spf13/cobra"
)

func newSetupChartCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup-chart",
		Short: "Create the standard chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withServices(cmd, func(svc *portssvc.ServiceContainer) error {
				created, err := svc.Maintenance.SetupChartOfAccounts(cmd.Context(), opts.actor)
				if err != nil {
					return err
				}
				if opts.asJSON {
					return writeJSON(cmd.OutOrStdout(), map[string]int{"created": created})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %d accounts\n", created)
				return nil
			})
		},
	}
}

func newRebuildBalancesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild-balances",
		Short: "Recompute every cached balance from posted transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withServices(cmd, func(svc *portssvc.ServiceContainer) error {
				report, err := svc.Maintenance.RebuildAllBalances(cmd.Context(), opts.actor)
				if err != nil {
					return err
				}
				return opts.printReport(cmd, report)
			})
		},
	}
}

func newVerifyBalancesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify-balances",
		Short: "Report cached balances that differ from posted transactions",
		Long:  "Recomputes balances without writing. Exits non-zero when any account drifted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withServices(cmd, func(svc *portssvc.ServiceContainer) error {
				report, err := svc.Maintenance.VerifyBalances(cmd.Context())
				if err != nil {
					return err
				}
				if err := opts.printReport(cmd, report); err != nil {
					return err
				}
				if len(report.Drifts) > 0 {
					return fmt.Errorf("%w: %d accounts drifted", apperrors.ErrConsistency, len(report.Drifts))
				}
				return nil
			})
		},
	}
}

func newAttachParentsCommand(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "attach-parents",
		Short: "Link parentless accounts to the parent implied by their code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withServices(cmd, func(svc *portssvc.ServiceContainer) error {
				attached, err := svc.Maintenance.AttachParents(cmd.Context(), dryRun, opts.actor)
				if err != nil {
					return err
				}
				if opts.asJSON {
					return writeJSON(cmd.OutOrStdout(), attached)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "CODE\tPARENT")
				for _, a := range attached {
					fmt.Fprintf(tw, "%s\t%s\n", a.Code, a.ParentCode)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				verb := "attached"
				if dryRun {
					verb = "would attach"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d accounts\n", verb, len(attached))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the links without writing them")

	return cmd
}

func newReconcileCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Backfill missing accounts and journal entries for enrollments and receipts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withServices(cmd, func(svc *portssvc.ServiceContainer) error {
				summary, err := svc.Maintenance.Reconcile(cmd.Context(), opts.actor)
				if err != nil {
					return err
				}
				if opts.asJSON {
					return writeJSON(cmd.OutOrStdout(), summary)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(tw, "student accounts ensured\t%d\n", summary.StudentAccountsEnsured)
				fmt.Fprintf(tw, "enrollments checked\t%d\n", summary.EnrollmentsChecked)
				fmt.Fprintf(tw, "opening entries posted\t%d\n", summary.OpeningEntriesPosted)
				fmt.Fprintf(tw, "receipts checked\t%d\n", summary.ReceiptsChecked)
				fmt.Fprintf(tw, "receipt entries created\t%d\n", summary.ReceiptEntriesCreated)
				fmt.Fprintf(tw, "receipt entries posted\t%d\n", summary.ReceiptEntriesPosted)
				fmt.Fprintf(tw, "balance drifts\t%d\n", summary.BalanceDrifts)
				return tw.Flush()
			})
		},
	}
}

func (o *rootOptions) printReport(cmd *cobra.Command, report *domain.RebuildReport) error {
	if o.asJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	out := cmd.OutOrStdout()
	if len(report.Drifts) > 0 {
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CODE\tCACHED\tCOMPUTED")
		for _, d := range report.Drifts {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Code, d.Cached.String(), d.Computed.String())
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "scanned %d accounts, %d drifted\n", report.AccountsScanned, len(report.Drifts))
	return nil
}
