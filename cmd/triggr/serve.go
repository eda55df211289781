package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/triggr-io/triggr/pkg/api"
	"github.com/triggr-io/triggr/pkg/chain"
	"github.com/triggr-io/triggr/pkg/log"
	"github.com/triggr-io/triggr/pkg/metrics"
	"github.com/triggr-io/triggr/pkg/rules"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chain subscriber and rule dispatcher",
	Long: `Serve starts the two long-lived tasks of spec §5: a chain
subscriber streaming decoded events, and a dispatcher draining them
into per-trigger rule evaluation. It runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		if p.cfg.ChainRPCURL == "" {
			return fmt.Errorf("TRIGGR_CHAIN_RPC_URL must be set to run serve")
		}

		healthAddr, _ := cmd.Flags().GetString("health-addr")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sub := chain.NewSubscriber(chain.Config{
			Endpoint:   p.cfg.ChainRPCURL,
			PalletName: p.cfg.ChainPallet,
		}, p.cache)

		dispatcher := rules.NewDispatcher(p.triggers, p.docs)

		healthSrv := api.NewHealthServer(p.store, p.broker)
		go func() {
			if err := healthSrv.Start(healthAddr); err != nil {
				log.Logger.Error().Err(err).Msg("health server exited")
			}
		}()

		collector := metrics.NewCollector(p.store)
		collector.Start()
		defer collector.Stop()

		go dispatcher.Run(sub.Events)

		log.Logger.Info().
			Str("chain_rpc", p.cfg.ChainRPCURL).
			Str("pallet", p.cfg.ChainPallet).
			Int("contracts_cached", p.cache.Len()).
			Msg("triggr serving")

		sub.Run(ctx)
		dispatcher.Stop()

		return nil
	},
}

func init() {
	serveCmd.Flags().String("health-addr", ":8080", "address for the internal health/metrics endpoint")
}
