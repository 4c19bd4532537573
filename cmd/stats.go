package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zpam/nbayes/pkg/learning"
)

var (
	statsModelPath string
	statsTop       int
	statsToken     []string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show model statistics",
	Long:  `Show training counts, priors and the most spammy and hammy tokens of the stored model`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		defer env.close()
		applyModelFlag(cmd, env, statsModelPath)

		model, err := env.loadModel(cmd.Context())
		if err != nil {
			return err
		}

		learning.PrintStats(os.Stdout, model, statsTop)

		for _, token := range statsToken {
			ts := model.TokenStatsFor(token)
			if ts == nil {
				fmt.Printf("❓ %s: not in vocabulary\n", token)
				continue
			}
			fmt.Printf("🔎 %s: P(t|ham)=%.4f P(t|spam)=%.4f spamminess=%.3f\n",
				ts.Token, ts.HamProb, ts.SpamProb, ts.Spamminess)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsModelPath, "model", "m", "", "Model file path (overrides store config)")
	statsCmd.Flags().IntVarP(&statsTop, "top", "n", 10, "Number of top tokens to show per class")
	statsCmd.Flags().StringSliceVarP(&statsToken, "token", "t", nil, "Show probabilities for specific tokens")
}
