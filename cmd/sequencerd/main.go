// Command sequencerd runs the InterLiquid SDK's single-producer sequencer
// loop against a pebble-backed state store, serving Prometheus metrics
// alongside it.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/circuits"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/commitment"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/kv"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/log"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/rollup"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/state"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/trie"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// passthroughApp is a minimal rollup.App that writes a transaction's raw
// value verbatim under the transaction's own key. It stands in for the embedding
// application's real module router, which is out of this SDK's scope.
type passthroughApp struct{}

type rawTx struct {
	key   []byte
	value []byte
	hash  types.Hash
}

func (t rawTx) Hash() types.Hash { return t.hash }

func (passthroughApp) ExecuteTx(txState *state.Transactional, tx circuits.Tx) error {
	rt, ok := tx.(rawTx)
	if !ok {
		return fmt.Errorf("sequencerd: unsupported tx type %T", tx)
	}
	return txState.Set(rt.key, rt.value)
}

func main() {
	app := &cli.App{
		Name:  "sequencerd",
		Usage: "run the InterLiquid SDK sequencer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "", Usage: "path to a YAML config file"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Default().Error("sequencerd exited with error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	logger := log.New(log.ParseLevel(cfg.LogLevel)).Module("sequencerd")
	logger.Info("starting", "chain_id", cfg.ChainID, "data_dir", cfg.DataDir)

	backing, err := kv.OpenPebble(cfg.DataDir+"/state", &pebble.Options{})
	if err != nil {
		return fmt.Errorf("open state db: %w", err)
	}
	defer backing.Close()

	stateDB, err := kv.OpenPebble(cfg.DataDir+"/state-trie", &pebble.Options{})
	if err != nil {
		return fmt.Errorf("open state trie db: %w", err)
	}
	defer stateDB.Close()

	keysDB, err := kv.OpenPebble(cfg.DataDir+"/keys-trie", &pebble.Options{})
	if err != nil {
		return fmt.Errorf("open keys trie db: %w", err)
	}
	defer keysDB.Close()

	stateTree := commitment.NewStateTree(trie.NewDatabase(stateDB, cfg.NodeCacheBytes))
	keysTrie := commitment.NewKeysTrie(trie.NewDatabase(keysDB, cfg.NodeCacheBytes))

	seq, err := rollup.NewSequencer(
		rollup.DefaultConfig(cfg.ChainID),
		passthroughApp{},
		backing,
		stateTree,
		keysTrie,
		cfg.BlockHeight,
		types.Now(),
	)
	if err != nil {
		return fmt.Errorf("new sequencer: %w", err)
	}

	reg := prometheus.NewRegistry()
	seq.Metrics().MustRegister(reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		g.Go(func() error {
			logger.Info("serving metrics", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			return srv.Close()
		})
	}

	g.Go(func() error {
		seq.Run(gctx)
		return nil
	})

	g.Go(func() error {
		for msg := range seq.Out() {
			if msg.Kind == rollup.MessageTxProofReady {
				logger.Info("tx witness ready",
					"tx_index", msg.TxProofReady.TxIndex,
					"block_height", msg.TxProofReady.BlockHeight)
			}
		}
		return nil
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down")
	seq.Close()
	cancel()
	return g.Wait()
}
