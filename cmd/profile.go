package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-partcheck/pkg/app"
	"github.com/deploymenttheory/go-partcheck/pkg/partition"
)

func newProfileCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the effective flash profile",
		Long: `Show the flash profile checks run against, after applying the config
file, PARTCHECK_* environment variables and --flash-size.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, source, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if err := cfg.Profile.Validate(); err != nil {
				return app.NewError(app.ErrCodeInvalidConfig, "invalid flash profile", err)
			}

			out := cmd.OutOrStdout()
			switch cfg.Output {
			case app.FormatJSON:
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(cfg.Profile)
			case app.FormatYAML:
				encoder := yaml.NewEncoder(out)
				defer encoder.Close()
				encoder.SetIndent(2)
				return encoder.Encode(cfg.Profile)
			case app.FormatTable:
			default:
				return fmt.Errorf("unsupported output format: %s", cfg.Output)
			}

			if source == "" {
				source = "built-in defaults"
			}
			p := cfg.Profile
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "Profile:\t%s\n", p.Name)
			fmt.Fprintf(w, "Source:\t%s\n", source)
			fmt.Fprintf(w, "Flash size:\t%s (0x%x)\n", partition.FormatSize(p.FlashSize), p.FlashSize)
			fmt.Fprintf(w, "Reserved:\t%s (0x%x)\n", partition.FormatSize(p.ReservedSize), p.ReservedSize)
			fmt.Fprintf(w, "Available:\t%s\n", partition.FormatSize(p.Available()))
			fmt.Fprintf(w, "Min OTA slots:\t%d\n", p.MinOTASlots)
			fmt.Fprintf(w, "APP size bands:\t%s / %s\n", partition.FormatSize(p.AppModerateSize), partition.FormatSize(p.AppAmpleSize))
			fmt.Fprintf(w, "SPIFFS ample:\t%s\n", partition.FormatSize(p.SPIFFSAmpleSize))
			fmt.Fprintf(w, "Utilization bands:\t%.0f%% / %.0f%%\n", p.GoodUtilization, p.HighUtilization)
			return nil
		},
	}
}
