package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sawpanic/pioneerpool/internal/data"
)

// overrideSynthFlags applies explicitly-set CLI flags over the configured
// scenario, leaving config defaults in place for everything else.
func overrideSynthFlags(flags *pflag.FlagSet, cfg *data.SynthConfig) {
	if flags.Changed("experts") {
		cfg.Experts, _ = flags.GetInt("experts")
	}
	if flags.Changed("periods") {
		cfg.Periods, _ = flags.GetInt("periods")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
}

func runSynth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	synthCfg := cfg.Synth
	overrideSynthFlags(cmd.Flags(), &synthCfg)
	out, _ := cmd.Flags().GetString("out")

	log.Info().
		Int("experts", synthCfg.Experts).
		Int("periods", synthCfg.Periods).
		Int64("seed", synthCfg.Seed).
		Str("out", out).
		Msg("generating synthetic panel")

	m := data.SynthPanel(synthCfg)
	if err := data.WritePanel(out, m); err != nil {
		return fmt.Errorf("synth failed: %w", err)
	}

	fmt.Printf("Wrote %s (%d periods × %d experts, shift at %d)\n",
		out, synthCfg.Periods, synthCfg.Experts, synthCfg.ShiftPeriod)

	return nil
}
