// Command beefy-voter wires the BEEFY voter worker to a libp2p transport,
// its RPC/HTTP outbound surfaces, and (for local runs without a real
// chain attached) the devchain harness, the way cmd/node assembles hare3
// in the teacher repo.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/libp2p/go-libp2p"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/beefynet/beefy"
	"github.com/beefynet/beefy/archive"
	"github.com/beefynet/beefy/common/types"
	"github.com/beefynet/beefy/config"
	"github.com/beefynet/beefy/gossip"
	"github.com/beefynet/beefy/httpapi"
	"github.com/beefynet/beefy/internal/devchain"
	"github.com/beefynet/beefy/justifysync"
	"github.com/beefynet/beefy/rpc"
	"github.com/beefynet/beefy/signing"
)

func main() {
	var cfgPath string

	root := &cobra.Command{
		Use:   "beefy-voter",
		Short: "BEEFY voter worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			v.BindPFlags(cmd.Flags())
			cfg, err := config.Load(afero.NewOsFs(), v, cfgPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	root.Flags().StringVar(&cfgPath, "config", "", "path to a YAML config file")
	config.BindFlags(root.Flags())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	root.SetContext(ctx)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()
	logging.SetupLogging(logging.Config{Stderr: true})
	logging.SetAllLoggers(logging.LevelWarn) // libp2p's own logs go through go-log/v2; fold into our level.

	h, err := libp2p.New()
	if err != nil {
		return fmt.Errorf("creating libp2p host: %w", err)
	}
	defer h.Close()

	ps, err := pubsub.NewGossipSub(ctx, h)
	if err != nil {
		return fmt.Errorf("creating gossipsub: %w", err)
	}

	peerTracker := gossip.NewPeerTracker()
	h.Network().Notify(peerTracker)

	validator := gossip.NewValidator()
	engine, err := gossip.NewEngine(ps, validator, log)
	if err != nil {
		return fmt.Errorf("joining gossip topic: %w", err)
	}

	signer, err := signing.NewSigner()
	if err != nil {
		return fmt.Errorf("generating signing key: %w", err)
	}
	keystore := signing.NewKeystore()
	keystore.Register(signer)

	chain := devchain.New(time.Second, cfg.Worker.GenesisValidatorSetID, []types.AuthorityID{signer.AuthorityID()})
	go chain.Run(ctx)

	jsClient := justifysync.NewClient(h, peerTracker, justifysync.WithClientLog(log))
	// devchain never persists a justification archive of its own, so this
	// node has nothing to serve peers that ask it for one; a production
	// backend wires this lookup to its justification store instead.
	jsServer := justifysync.New(h, func(ctx context.Context, number uint64) (beefy.FinalityProof, bool, error) {
		return beefy.FinalityProof{}, false, nil
	}, justifysync.WithLog(log))
	go jsServer.Run(ctx)

	rpcServer := rpc.NewServer(log)
	grpcServer := rpc.NewGRPCServer(log)
	rpc.Register(grpcServer, rpcServer)
	rpcLis, err := netListen(cfg.RPCListen)
	if err != nil {
		return fmt.Errorf("binding rpc listener: %w", err)
	}
	go grpcServer.Serve(rpcLis)
	defer grpcServer.GracefulStop()

	var justificationSink beefy.JustificationSink = rpcServer
	if cfg.ArchiveDir != "" {
		archiver, err := archive.New(cfg.ArchiveDir, log)
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer archiver.Close()
		justificationSink = fanOutJustifications{rpcServer, archiver}
	}

	httpSrv := &httpServer{addr: cfg.HTTPListen, handler: httpapi.NewHandler(log, chain)}
	go httpSrv.run(ctx, log)

	w := beefy.New(
		chain, chain, keystore,
		engine, validator, jsClient, peerTracker, chain,
		rpcServer, justificationSink,
		beefy.WithConfig(cfg.Worker),
		beefy.WithLogger(log),
	)
	if err := w.Start(); err != nil {
		return fmt.Errorf("starting worker: %w", err)
	}

	<-ctx.Done()
	return w.Stop()
}

// fanOutJustifications broadcasts a finalized justification to more than
// one sink, since beefy.Worker is only handed one.
type fanOutJustifications []beefy.JustificationSink

func (f fanOutJustifications) NotifyJustification(proof beefy.FinalityProof) {
	for _, sink := range f {
		sink.NotifyJustification(proof)
	}
}
