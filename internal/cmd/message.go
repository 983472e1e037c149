package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctxsentry/ctxsentry/internal/config"
	"github.com/ctxsentry/ctxsentry/internal/hook"
	"github.com/ctxsentry/ctxsentry/internal/project"
	"github.com/ctxsentry/ctxsentry/internal/transcript"
	"github.com/ctxsentry/ctxsentry/internal/ui"
)

var (
	messageRaw    bool
	messageSizeKB float64
)

var messageCmd = &cobra.Command{
	Use:     "message",
	GroupID: GroupInspect,
	Short:   "Preview the warning that gets injected on fire",
	Long: `Show the checkpoint reminder exactly as the assistant would receive
it, filled in with the current transcript size and threshold.

Use --raw for the unrendered text (what actually goes over the wire),
or --size to preview the numbers at a hypothetical transcript size.`,
	RunE: runMessage,
}

func init() {
	messageCmd.Flags().BoolVar(&messageRaw, "raw", false, "Print the wire text without markdown rendering")
	messageCmd.Flags().Float64Var(&messageSizeKB, "size", 0, "Preview at this transcript size in KB")
	rootCmd.AddCommand(messageCmd)
}

func runMessage(cmd *cobra.Command, args []string) error {
	dir := project.RootOrCwd()
	cfg := config.Load(dir)

	sizeKB := messageSizeKB
	if sizeKB == 0 {
		// Fall back to the live transcript, then to the threshold itself
		// so the preview always shows a firing-sized number.
		if path, err := transcript.Locate(dir); err == nil {
			if kb, err := transcript.SizeKB(path); err == nil {
				sizeKB = kb
			}
		}
		if sizeKB < float64(cfg.ThresholdKB) {
			sizeKB = float64(cfg.ThresholdKB)
		}
	}

	text := hook.WarningMessage(sizeKB, cfg.ThresholdKB)
	if messageRaw {
		fmt.Println(text)
		return nil
	}
	fmt.Println(ui.RenderMarkdown(text))
	return nil
}
