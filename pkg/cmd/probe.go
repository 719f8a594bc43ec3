package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smy-101/skillsync/internal/discovery"
	"github.com/smy-101/skillsync/internal/settings"
	"github.com/smy-101/skillsync/internal/worker"
)

func init() {
	rootCmd.AddCommand(probeCmd)
}

var probeCmd = &cobra.Command{
	Use:   "probe <url>...",
	Short: "Measure endpoint latency",
	Long: "Probes each URL on a background worker. When URLs queue up faster than\n" +
		"probes complete, only the most recent request is honored.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := settings.Get()
		client := discovery.NewClient(s.GitHubToken, s.Proxy)

		w := worker.StartProbe(client.ProbeLatency)
		defer w.Close()

		for _, url := range args {
			w.Submit(url)
			res, ok := w.Recv()
			if !ok {
				return fmt.Errorf("probe worker shut down unexpectedly")
			}
			if res.Err != nil {
				fmt.Printf("%s  error: %v\n", res.URL, res.Err)
				continue
			}
			fmt.Printf("%s  %s\n", res.URL, res.Latency.Round(time.Millisecond))
		}
		return nil
	},
}
