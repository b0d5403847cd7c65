package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTotalCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "count every ingredient ID the fresh ranges cover",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTotal(cmd, v)
		},
	}
}

func runTotal(cmd *cobra.Command, v *viper.Viper) error {
	db, err := loadDatabase(v)
	if err != nil {
		return err
	}

	total := db.TotalFresh()
	log.Info().
		Int("ranges", len(db.FreshRanges())).
		Int64("total", total).
		Msg("fresh ranges counted")
	fmt.Fprintln(cmd.OutOrStdout(), total)
	return nil
}
