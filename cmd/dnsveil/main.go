package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dnsveil/internal/api"
	"dnsveil/internal/config"
	"dnsveil/internal/database"
	"dnsveil/internal/diagnostics"
	"dnsveil/internal/dns"
	"dnsveil/internal/logging"
	"dnsveil/internal/steg"
)

// @title dnsveil control API
// @version 1.0
// @description Local control and status API for the dnsveil encoder.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	var (
		configPath  = flag.String("config", "", "Path to JSON configuration file (or set DNSVEIL_CONFIG)")
		baseDomain  = flag.String("base-domain", "", "Override base domain for generated subdomains")
		strategy    = flag.String("strategy", "", "Override encoding strategy (txt-only, multi-record, distributed, http-body)")
		payload     = flag.String("payload", "", "Payload string to run through an encode/decode round trip")
		payloadFile = flag.String("payload-file", "", "Read the round-trip payload from a file instead")
		serve       = flag.Bool("serve", false, "Force the control API on regardless of configuration")
		jsonLogs    = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug       = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *baseDomain != "" {
		cfg.Channel.BaseDomain = *baseDomain
	}
	if *strategy != "" {
		if _, err := steg.ParseStrategy(*strategy); err != nil {
			fmt.Fprintf(os.Stderr, "invalid strategy: %v\n", err)
			os.Exit(1)
		}
		cfg.Encoder.Strategy = *strategy
	}
	if *serve {
		cfg.API.Enabled = true
	}
	if *jsonLogs {
		cfg.Logging.JSON = true
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Configure(logging.Config{
		Level:       cfg.Logging.Level,
		JSON:        cfg.Logging.JSON,
		IncludePID:  cfg.Logging.IncludePID,
		ExtraFields: cfg.Logging.ExtraFields,
	})
	logger.Info("dnsveil starting",
		"strategy", cfg.Encoder.Strategy,
		"base_domain", cfg.Channel.BaseDomain,
		"api", cfg.API.Enabled,
	)

	reports := diagnostics.RunPreflightChecks()
	for _, r := range reports {
		logger.Info("preflight", "level", r.Level.String(), "check", r.Message)
	}
	if diagnostics.Failed(reports) {
		fmt.Fprint(os.Stderr, diagnostics.RenderReport(reports))
		os.Exit(1)
	}

	var db *database.DB
	if cfg.Database.Path != "" {
		db, err = database.Open(cfg.Database.Path)
		if err != nil {
			logger.Warn("profile store unavailable, continuing without persistence", "error", err)
		} else {
			defer db.Close()
		}
	}

	data, err := roundTripPayload(*payload, *payloadFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read payload: %v\n", err)
		os.Exit(1)
	}
	if len(data) > 0 {
		if err := runRoundTrip(cfg, logger, db, data); err != nil {
			fmt.Fprintf(os.Stderr, "round trip failed: %v\n", err)
			os.Exit(1)
		}
	}

	if cfg.API.Enabled {
		if err := serveAPI(cfg, logger, db); err != nil {
			fmt.Fprintf(os.Stderr, "api server exited with error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if len(data) == 0 {
		logger.Info("nothing to do: pass -payload/-payload-file or enable the API")
	}
}

func roundTripPayload(inline, file string) ([]byte, error) {
	if file != "" {
		return os.ReadFile(file)
	}
	if inline != "" {
		return []byte(inline), nil
	}
	return nil, nil
}

// runRoundTrip pushes a payload through the full local pipeline: fragment it,
// wrap each fragment in query and response packets, parse the response wire
// bytes back, and decode what survived. No packet leaves the process.
func runRoundTrip(cfg *config.Config, logger *slog.Logger, db *database.DB, payload []byte) error {
	enc := cfg.NewEncoder(nil)
	start := time.Now()

	if enc.Config().Strategy == steg.StrategyHTTPBody {
		return runHTTPBodyRoundTrip(enc, logger, db, payload, start)
	}

	res, err := enc.EncodePayload(payload, cfg.Channel.BaseDomain)
	if err != nil {
		return err
	}

	noise := 0
	for _, frag := range res.Fragments {
		if frag.IsNoise() {
			noise++
		}
	}
	logger.Info("payload encoded",
		"payload_bytes", len(payload),
		"fragments", len(res.Fragments)-noise,
		"noise", noise,
		"truncated", res.Truncated,
	)

	builder := dns.NewBuilder(nil)
	answers := make([]dns.ResourceRecord, 0, len(res.Fragments))
	for _, frag := range res.Fragments {
		q := dns.Question{Name: frag.Domain, Type: frag.RecordType, Class: dns.ClassIN}
		query, err := builder.BuildQuery(q, nil)
		if err != nil {
			return err
		}
		logger.Debug("query built", "domain", frag.Domain, "type", frag.RecordType.String(), "bytes", len(query))
		answers = append(answers, frag.Record(300))
	}

	q := dns.Question{Name: cfg.Channel.BaseDomain, Type: dns.TypeTXT, Class: dns.ClassIN}
	response, err := dns.BuildResponse(0x1234, q, answers)
	if err != nil {
		return err
	}
	logger.Debug("response assembled", "bytes", len(response))
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		fmt.Print(dns.DumpHex(response))
	}

	parsed, err := dns.ParseResponse(response)
	if err != nil {
		return err
	}
	raw, err := steg.ExtractWithOptions(parsed, steg.ExtractOptions{RecoverEmbeddedIDs: true})
	if err != nil {
		return err
	}
	logger.Info("wire round trip complete", "answers", len(parsed), "extracted_bytes", len(raw))

	decoded, err := enc.DecodeFragments(res.Fragments)
	if err != nil {
		return err
	}
	if !bytes.Equal(decoded.Data, payload) {
		return fmt.Errorf("decoded payload differs from input (%d bytes vs %d)", len(decoded.Data), len(payload))
	}
	logger.Info("payload decoded",
		"bytes", len(decoded.Data),
		"record_types", decoded.UsedRecordTypes,
		"decode_time", decoded.DecodeTime,
	)

	journal(logger, db, database.TransferRecord{
		Direction:     "encode",
		Strategy:      enc.Config().Strategy.String(),
		PayloadBytes:  len(payload),
		FragmentCount: len(res.Fragments) - noise,
		NoiseCount:    noise,
		Truncated:     res.Truncated,
		Duration:      time.Since(start),
	})
	return nil
}

func runHTTPBodyRoundTrip(enc *steg.Encoder, logger *slog.Logger, db *database.DB, payload []byte, start time.Time) error {
	body := enc.EncodeHTTPBody(payload)
	logger.Info("payload wrapped in http body", "payload_bytes", len(payload), "body_bytes", len(body))

	extracted, err := steg.ExtractFromHTTPBody(body)
	if err != nil {
		return err
	}
	logger.Info("http body round trip complete", "extracted_bytes", len(extracted))

	journal(logger, db, database.TransferRecord{
		Direction:     "encode",
		Strategy:      steg.StrategyHTTPBody.String(),
		PayloadBytes:  len(payload),
		FragmentCount: 1,
		Duration:      time.Since(start),
	})
	return nil
}

func journal(logger *slog.Logger, db *database.DB, rec database.TransferRecord) {
	if db == nil {
		return
	}
	if err := db.RecordTransfer(rec); err != nil {
		logger.Warn("failed to journal transfer", "error", err)
	}
}

func serveAPI(cfg *config.Config, logger *slog.Logger, db *database.DB) error {
	srv := api.New(cfg, logger, db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("control api stopped")
	return nil
}
