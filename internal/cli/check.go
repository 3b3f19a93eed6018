package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vendorsync/internal/app"
)

type checkOptions struct {
	ContinueOnError bool
}

func newCheckCommand() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report packages with a newer upstream tag than the pinned one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.ContinueOnError, "continue-on-error", false, "Continue with remaining packages after a failure")
	_ = viper.BindPFlag("continue_on_error", cmd.Flags().Lookup("continue-on-error"))
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts checkOptions) error {
	service := newAppService()
	result, err := service.Check(ctx, app.CheckRequest{
		BindingsRoot:    viper.GetString("bindings_root"),
		ContinueOnError: resolveBool(cmd, opts.ContinueOnError, "continue_on_error", "continue-on-error"),
	})
	if err != nil {
		return err
	}
	// Update notices are the only expected stdout beyond package names;
	// the summary stays at debug level.
	log.Debug().
		Int("checked", result.Checked).
		Int("outdated", result.Outdated).
		Msg("check completed")
	return nil
}
