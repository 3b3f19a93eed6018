package cli

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vendorsync/internal/app"
)

type applyOptions struct {
	ContinueOnError bool
}

func newApplyCommand() *cobra.Command {
	opts := applyOptions{}
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Re-vendor enabled packages from their pinned upstream tags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApply(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.ContinueOnError, "continue-on-error", false, "Continue with remaining packages after a failure")
	_ = viper.BindPFlag("continue_on_error", cmd.Flags().Lookup("continue-on-error"))
	return cmd
}

func runApply(ctx context.Context, cmd *cobra.Command, opts applyOptions) error {
	service := newAppService()
	result, err := service.Apply(ctx, app.ApplyRequest{
		BindingsRoot:    viper.GetString("bindings_root"),
		ContinueOnError: resolveBool(cmd, opts.ContinueOnError, "continue_on_error", "continue-on-error"),
	})
	if err != nil {
		return err
	}
	// Package names are the only expected stdout; everything the
	// operator reads flows through the service writer.
	log.Debug().Int("applied", result.Applied).Msg("apply completed")
	return nil
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
