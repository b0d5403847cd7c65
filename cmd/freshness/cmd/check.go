package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCheckCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "count the available ingredient IDs that are fresh",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, v)
		},
	}
	cmd.Flags().Bool("verbose", false,
		"print the status of every available ingredient")
	_ = v.BindPFlag("verbose", cmd.Flags().Lookup("verbose"))
	return cmd
}

func runCheck(cmd *cobra.Command, v *viper.Viper) error {
	db, err := loadDatabase(v)
	if err != nil {
		return err
	}

	if v.GetBool("verbose") {
		for _, ingredient := range db.Ingredients() {
			for i := 0; i < ingredient.Count; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), ingredient.String())
			}
		}
	}
	fresh := db.CountFresh()
	log.Info().Int("fresh", fresh).Msg("available ingredients checked")
	fmt.Fprintln(cmd.OutOrStdout(), fresh)
	return nil
}
