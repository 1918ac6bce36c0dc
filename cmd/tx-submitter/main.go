package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/txsubmitter/internal/journal"
	boltjournal "github.com/goodnatureofminers/txsubmitter/internal/journal/bolt"
	chjournal "github.com/goodnatureofminers/txsubmitter/internal/journal/clickhouse"
	"github.com/goodnatureofminers/txsubmitter/internal/jsonrpc"
	"github.com/goodnatureofminers/txsubmitter/internal/metrics"
	"github.com/goodnatureofminers/txsubmitter/internal/model"
	"github.com/goodnatureofminers/txsubmitter/internal/node"
	"github.com/goodnatureofminers/txsubmitter/internal/service"
	"github.com/goodnatureofminers/txsubmitter/internal/txbuilder"
)

type config struct {
	RPCURL         string        `long:"rpc-url" env:"TX_SUBMITTER_RPC_URL" description:"wallet node JSON-RPC URL" default:"http://127.0.0.1:8383"`
	RPCUser        string        `long:"rpc-user" env:"TX_SUBMITTER_RPC_USER" description:"wallet node RPC username"`
	RPCPassword    string        `long:"rpc-password" env:"TX_SUBMITTER_RPC_PASSWORD" description:"wallet node RPC password"`
	RPCTimeout     time.Duration `long:"rpc-timeout" env:"TX_SUBMITTER_RPC_TIMEOUT" description:"timeout of a single RPC attempt" default:"30s"`
	RPCRPS         int           `long:"rpc-rps" env:"TX_SUBMITTER_RPC_RPS" description:"max RPC requests per second, 0 for unlimited" default:"0"`
	RPCRetries     int           `long:"rpc-retries" env:"TX_SUBMITTER_RPC_RETRIES" description:"extra attempts for idempotent RPC calls after transport errors" default:"2"`
	RetryBroadcast bool          `long:"retry-broadcast" env:"TX_SUBMITTER_RETRY_BROADCAST" description:"also retry sendrawtransaction after transport errors"`
	WalletPassword string        `long:"wallet-password" env:"TX_SUBMITTER_WALLET_PASSWORD" description:"account password used by the node to sign" required:"true"`
	Network        model.Network `long:"network" env:"TX_SUBMITTER_NETWORK" description:"network label for metrics" default:"mainnet" choice:"mainnet" choice:"testnet" choice:"regtest"`

	Account   string  `long:"account" env:"TX_SUBMITTER_ACCOUNT" description:"account paying a single transfer"`
	Recipient string  `long:"recipient" env:"TX_SUBMITTER_RECIPIENT" description:"base64 secp256k1 public key of the recipient"`
	Amount    float64 `long:"amount" env:"TX_SUBMITTER_AMOUNT" description:"amount to pay, in coins"`
	Nonce     uint64  `long:"nonce" env:"TX_SUBMITTER_NONCE" description:"output nonce, identifies the payment for idempotency"`
	BatchFile string  `long:"batch-file" env:"TX_SUBMITTER_BATCH_FILE" description:"JSON file with a list of transfers"`

	Workers      int    `long:"workers" env:"TX_SUBMITTER_WORKERS" description:"accounts processed concurrently in batch mode" default:"4"`
	FailFast     bool   `long:"fail-fast" env:"TX_SUBMITTER_FAIL_FAST" description:"stop a batch at the first failed transfer"`
	Selection    string `long:"selection" env:"TX_SUBMITTER_SELECTION" description:"unspent output selection policy" default:"first" choice:"first" choice:"last" choice:"largest"`
	CheckBalance bool   `long:"check-balance" env:"TX_SUBMITTER_CHECK_BALANCE" description:"refuse transfers paying more than the selected output holds"`

	JournalPath          string `long:"journal-path" env:"TX_SUBMITTER_JOURNAL_PATH" description:"bbolt file keeping submission records"`
	JournalClickhouseDSN string `long:"journal-clickhouse-dsn" env:"TX_SUBMITTER_JOURNAL_CLICKHOUSE_DSN" description:"ClickHouse DSN of a shared submission journal"`
	MetricsAddr          string `long:"metrics-addr" env:"TX_SUBMITTER_METRICS_ADDR" description:"address for metrics server, disabled when empty"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, os.Stdout, logger); err != nil {
		logger.Fatal("tx submitter failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, out io.Writer, logger *zap.Logger) error {
	transfers, err := loadTransfers(cfg)
	if err != nil {
		return err
	}
	selection, err := txbuilder.ParseSelection(cfg.Selection)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		startMetricsServer(ctx, cfg.MetricsAddr, logger)
	}

	caller, err := jsonrpc.NewClient(jsonrpc.Config{
		URL:      cfg.RPCURL,
		User:     cfg.RPCUser,
		Password: cfg.RPCPassword,
		Timeout:  cfg.RPCTimeout,
		RPS:      cfg.RPCRPS,
		Retries:  cfg.RPCRetries,
	}, metrics.NewRPCClient(cfg.Network), logger.Named("rpc"))
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}

	var nodeOpts []node.Option
	if cfg.RetryBroadcast {
		nodeOpts = append(nodeOpts, node.WithBroadcastRetry())
	}
	nodeClient, err := node.NewClient(caller, nodeOpts...)
	if err != nil {
		return fmt.Errorf("init node client: %w", err)
	}

	info, err := nodeClient.GetInfo(ctx)
	if err != nil {
		return fmt.Errorf("get node info: %w", err)
	}
	logger.Info("connected to wallet node",
		zap.String("version", info.Version),
		zap.Uint64("connections", info.Connections),
		zap.Uint64("height", info.Height),
	)

	builder, err := txbuilder.NewBuilder(nodeClient, txbuilder.WithSelection(selection))
	if err != nil {
		return fmt.Errorf("init transaction builder: %w", err)
	}

	j, closeJournal, err := openJournal(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	svc, err := service.NewTransferService(builder, j, metrics.NewTransfer(cfg.Network), service.Config{
		Credentials:  txbuilder.Credentials{Password: cfg.WalletPassword},
		CheckBalance: cfg.CheckBalance,
		Workers:      cfg.Workers,
		FailFast:     cfg.FailFast,
	}, logger)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if len(transfers) == 1 && cfg.BatchFile == "" {
		res, transferErr := svc.Transfer(ctx, transfers[0])
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		return transferErr
	}

	results, batchErr := svc.TransferBatch(ctx, transfers)
	if err := enc.Encode(reportOf(results)); err != nil {
		return fmt.Errorf("write batch report: %w", err)
	}
	return batchErr
}

type journalBackend interface {
	service.Journal
	Close() error
}

func openJournal(ctx context.Context, cfg config, logger *zap.Logger) (service.Journal, func(), error) {
	var (
		backend journalBackend
		name    string
	)
	switch {
	case cfg.JournalClickhouseDSN != "":
		chj, err := chjournal.NewJournal(cfg.JournalClickhouseDSN, metrics.NewJournal("clickhouse"))
		if err != nil {
			return nil, nil, fmt.Errorf("init clickhouse journal: %w", err)
		}
		if err := chj.Ping(ctx); err != nil {
			_ = chj.Close()
			return nil, nil, err
		}
		backend, name = chj, "clickhouse"
	case cfg.JournalPath != "":
		bj, err := boltjournal.Open(cfg.JournalPath)
		if err != nil {
			return nil, nil, err
		}
		backend, name = bj, "bolt"
	default:
		logger.Warn("submission journal is in memory, reruns are not deduplicated")
		return journal.NewMemory(), func() {}, nil
	}

	logger.Info("submission journal opened", zap.String("backend", name))
	return backend, func() {
		if err := backend.Close(); err != nil {
			logger.Error("failed to close submission journal", zap.Error(err))
		}
	}, nil
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
