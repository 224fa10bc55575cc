package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/notify"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.NtfyTopic == "" {
				return errors.New("no ntfy topic configured (set NTFY_TOPIC)")
			}
			if err := notify.NewService(cfg).TestNotification(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Notification sent")
			return nil
		},
	}
}
