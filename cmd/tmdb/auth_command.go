package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCommand(ctx *commandContext) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "TMDb session utilities",
	}
	authCmd.AddCommand(newAuthCheckCommand(ctx))
	return authCmd
}

func newAuthCheckCommand(ctx *commandContext) *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Log in to TMDb and report whether it worked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.commandLogger(cmd)
			if err != nil {
				return err
			}
			run := ctx.runContext(cmd)

			session, err := openBrowserSession(run, cfg, flags, logger)
			if err != nil {
				return err
			}
			defer closeSession(session, logger)

			loggedInNow, err := ensureLoggedIn(run, session, cfg, flags, newPrompter(cmd.ErrOrStderr()), logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			message := "logged in to " + cfg.TMDB.BaseURL
			if !loggedInNow {
				message = "existing session on " + cfg.TMDB.BaseURL
			}
			fmt.Fprintln(out, renderStatusLine("auth", styleOK, message, colorize))
			return nil
		},
	}

	addSessionFlags(cmd.Flags(), &flags)
	return cmd
}
