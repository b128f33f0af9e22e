package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aouyang1/theframe/api/client"
	"github.com/aouyang1/theframe/api/models"
)

// CLI flags
var (
	addrFlag     string
	timeoutFlag  time.Duration
	limitFlag    int
	effectFlag   string
	durationFlag float64
	intervalFlag float64
	startFlag    string
	denyFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "framectl",
	Short: "Control a running photo frame",
	Long: `framectl talks to a photo frame over its HTTP API.

Examples:
  framectl access request
  framectl photos --limit 10
  framectl apply --effect slide --duration 1.5 --interval 6
  framectl status`,
	SilenceUsage: true,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show access and slideshow state",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		fc := client.NewFrameClient(addrFlag)

		res, err := fc.AccessStatus(ctx)
		if err != nil {
			return err
		}
		out := map[string]any{"access": res}
		if st, err := fc.SlideshowState(ctx); err == nil {
			out["slideshow"] = st
		}
		return printJSON(out)
	},
}

var photosCmd = &cobra.Command{
	Use:   "photos",
	Short: "List the newest photos",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		res, err := client.NewFrameClient(addrFlag).Photos(ctx, limitFlag)
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Update the settings and start the slideshow",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		fc := client.NewFrameClient(addrFlag)

		if _, err := fc.OpenSettings(ctx); err != nil {
			return err
		}

		var req models.UpdateSettingsRequest
		if cmd.Flags().Changed("effect") {
			req.Effect = &effectFlag
		}
		if cmd.Flags().Changed("duration") {
			req.EffectDurationSeconds = &durationFlag
		}
		if cmd.Flags().Changed("interval") {
			req.PhotoIntervalSeconds = &intervalFlag
		}
		if _, err := fc.UpdateSettings(ctx, req); err != nil {
			return err
		}

		if startFlag != "" {
			if _, err := fc.SelectPhoto(ctx, startFlag); err != nil {
				return err
			}
		}

		params, err := fc.Apply(ctx)
		if err != nil {
			return err
		}
		st, err := fc.OpenSlideshow(ctx, params.Location)
		if err != nil {
			return err
		}
		return printJSON(st)
	},
}

var accessCmd = &cobra.Command{
	Use:   "access",
	Short: "Manage photo library access",
}

var accessRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Grant access to the photo library (or refuse with --deny)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		res, err := client.NewFrameClient(addrFlag).RequestAccess(ctx, !denyFlag)
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var accessRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Withdraw access to the photo library",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		return client.NewFrameClient(addrFlag).RevokeAccess(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&addrFlag, "addr", "a", envOr("DPF_FRAME_URL", "http://localhost:8080"), "Base URL of the frame")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 10*time.Second, "Request timeout")

	photosCmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "Maximum photos to list (0 = server default)")

	applyCmd.Flags().StringVarP(&effectFlag, "effect", "e", "Fade", "Transition effect: Fade, Slide or Zoom")
	applyCmd.Flags().Float64VarP(&durationFlag, "duration", "d", 1.2, "Transition duration in seconds (0.5 to 8)")
	applyCmd.Flags().Float64VarP(&intervalFlag, "interval", "i", 4, "Seconds each photo is shown (0.5 to 8)")
	applyCmd.Flags().StringVarP(&startFlag, "start", "s", "", "Photo id to start from")

	accessRequestCmd.Flags().BoolVar(&denyFlag, "deny", false, "Refuse access instead of granting it")

	accessCmd.AddCommand(accessRequestCmd, accessRevokeCmd)
	rootCmd.AddCommand(statusCmd, photosCmd, applyCmd, accessCmd)
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeoutFlag)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
