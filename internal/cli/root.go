// Package cli implements the amortize command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/segyhp/loan-amortizer/internal/amortization"
	"github.com/segyhp/loan-amortizer/internal/domain"
	"github.com/segyhp/loan-amortizer/pkg/logger"
	"github.com/segyhp/loan-amortizer/pkg/utils"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

type options struct {
	amount   string
	down     string
	fees     string
	apr      string
	term     string
	start    string
	maxTerm  int
	asJSON   bool
	logLevel string
}

// NewRootCommand builds the amortize command. now supplies "today" when
// --start is not given.
func NewRootCommand(now func() time.Time) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "amortize",
		Short: "Print a fixed-rate loan amortization schedule",
		Long: `amortize computes the level monthly payment, per-period interest and
principal split, running balance and payoff date of a fixed-rate loan.

Inputs are read the way a loan form reads them: anything that is not a
non-negative number counts as 0 and the term is at least one month.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Setup(logger.Options{Level: opts.logLevel, Format: "console", Output: cmd.ErrOrStderr()}); err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			return run(cmd.OutOrStdout(), opts, now)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.amount, "amount", "8000", "purchase amount")
	flags.StringVar(&opts.down, "down", "0", "down payment")
	flags.StringVar(&opts.fees, "fees", "0", "fees added to the financed principal")
	flags.StringVar(&opts.apr, "apr", "6.5", "annual percentage rate, e.g. 6.5")
	flags.StringVar(&opts.term, "term", "12", "term in months")
	flags.StringVar(&opts.start, "start", "", "first due date (YYYY-MM-DD), defaults to today")
	flags.IntVar(&opts.maxTerm, "max-term", 1200, "upper bound on the term in months (0 disables)")
	flags.BoolVar(&opts.asJSON, "json", false, "print the schedule as JSON")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand(time.Now).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer, opts *options, now func() time.Time) error {
	log := logger.WithComponent("cli")

	in := domain.LoanInputs{
		Amount:            utils.ParseAmount(opts.amount),
		DownPayment:       utils.ParseAmount(opts.down),
		Fees:              utils.ParseAmount(opts.fees),
		TermMonths:        utils.ClampTerm(utils.ParseTerm(opts.term), opts.maxTerm),
		AnnualRatePercent: utils.ParseRate(opts.apr),
		StartDate:         utils.ParseDate(opts.start),
	}
	if opts.start != "" && !in.HasStartDate() {
		log.Warn().Str("start", opts.start).Msg("unparseable start date, using today")
	}

	result := amortization.Compute(in, now())
	log.Debug().Int("lines", len(result.Lines)).Str("principal", result.Principal.String()).Msg("schedule computed")

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printSchedule(out, in, result)
}

func printSchedule(out io.Writer, in domain.LoanInputs, result *domain.ScheduleResult) error {
	if result.IsEmpty() {
		_, err := fmt.Fprintln(out, "Nothing to finance: the down payment covers the amount and fees.")
		return err
	}

	fmt.Fprintf(out, "Principal:        %s\n", result.Principal.StringFixed(2))
	fmt.Fprintf(out, "Periodic rate:    %s%%\n", amortization.PeriodicRate(in.AnnualRatePercent).Shift(2).StringFixed(4))
	fmt.Fprintf(out, "Monthly payment:  %s\n", result.MonthlyPayment.StringFixed(2))
	if !result.FinalPayment.Equal(result.MonthlyPayment) {
		fmt.Fprintf(out, "Final payment:    %s\n", result.FinalPayment.StringFixed(2))
	}
	fmt.Fprintf(out, "Total paid:       %s\n", result.TotalPaid.StringFixed(2))
	fmt.Fprintf(out, "Total interest:   %s\n", result.TotalInterest.StringFixed(2))
	fmt.Fprintf(out, "Payoff date:      %s\n\n", result.PayoffDate.Format("Jan 2006"))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tPayment\tInterest\tPrincipal\tBalance\tDue\t")
	for _, line := range result.Lines {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			line.Index,
			line.Payment.StringFixed(2),
			line.Interest.StringFixed(2),
			line.PrincipalPaid.StringFixed(2),
			line.EndingBalance.StringFixed(2),
			line.DueDate.Format("Jan 02, 2006"),
		)
	}
	return tw.Flush()
}
