package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ais_watch/internal/api"
	"ais_watch/internal/feed"
	"ais_watch/internal/pipeline"
	"ais_watch/internal/storage"
)

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	udpAddr := fs.String("udp", "", "UDP listen address for NMEA input (e.g. :10110)")
	natsURL := fs.String("nats", "", "NATS server URL for NMEA input (e.g. nats://localhost:4222)")
	subject := fs.String("subject", "ais.raw", "NATS subject carrying raw NMEA lines")
	publish := fs.String("publish", "", "NATS subject to publish decoded messages on (empty: no publish)")
	dbPath := fs.String("db", "ais.db", "Local SQLite database path")
	port := fs.Int("port", 8080, "HTTP API port")
	useCH := fs.Bool("clickhouse", false, "Archive messages in ClickHouse (default local settings)")
	usePG := fs.Bool("postgres", false, "Track vessel state in PostgreSQL (default local settings)")
	_ = fs.Parse(args)

	if *udpAddr == "" && *natsURL == "" {
		fmt.Fprintln(os.Stderr, "serve: at least one of -udp or -nats is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	local, err := storage.OpenLocal(*dbPath)
	if err != nil {
		log.Fatalf("open local db: %v", err)
	}
	defer func() { _ = local.Close() }()

	opts := []pipeline.Option{pipeline.WithLocal(local)}

	cfg := storage.DefaultConfig()
	var pg *storage.PostgresDB
	switch {
	case *useCH && *usePG:
		db, err := storage.Open(ctx, cfg)
		if err != nil {
			log.Fatalf("open databases: %v", err)
		}
		defer func() { _ = db.Close() }()
		if err := db.CreateSchemas(ctx); err != nil {
			log.Fatalf("create schemas: %v", err)
		}
		maxID, err := db.CH.MaxID(ctx)
		if err != nil {
			log.Printf("clickhouse max id: %v (starting from 0)", err)
		}
		pg = db.PG
		opts = append(opts, pipeline.WithClickHouse(db.CH, maxID), pipeline.WithPostgres(pg))
	case *useCH:
		ch, err := storage.OpenClickHouse(ctx, cfg.ClickHouse)
		if err != nil {
			log.Fatalf("open clickhouse: %v", err)
		}
		defer func() { _ = ch.Close() }()
		if err := ch.CreateSchema(ctx); err != nil {
			log.Fatalf("clickhouse schema: %v", err)
		}
		maxID, err := ch.MaxID(ctx)
		if err != nil {
			log.Printf("clickhouse max id: %v (starting from 0)", err)
		}
		opts = append(opts, pipeline.WithClickHouse(ch, maxID))
	case *usePG:
		pg, err = storage.OpenPostgres(ctx, cfg.Postgres)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		defer pg.Close()
		if err := pg.CreateSchema(ctx); err != nil {
			log.Fatalf("postgres schema: %v", err)
		}
		opts = append(opts, pipeline.WithPostgres(pg))
	}

	server := api.NewServer(local, pg, api.Config{Port: *port})
	opts = append(opts, pipeline.WithBroadcast(server.Hub()))

	var nf *feed.NATSFeed
	if *natsURL != "" {
		nf, err = feed.ConnectNATS(feed.NATSConfig{URL: *natsURL, Subject: *subject})
		if err != nil {
			log.Fatalf("connect nats: %v", err)
		}
		defer nf.Close()
		if *publish != "" {
			opts = append(opts, pipeline.WithPublish(nf, *publish))
		}
	}

	proc := pipeline.New(opts...)

	if *udpAddr != "" {
		listener, err := feed.ListenUDP(*udpAddr)
		if err != nil {
			log.Fatalf("udp listen: %v", err)
		}
		go func() {
			log.Printf("listening for NMEA on udp %s", *udpAddr)
			if err := listener.Run(ctx, proc.HandleLine); err != nil && ctx.Err() == nil {
				log.Printf("udp feed stopped: %v", err)
			}
		}()
	}

	if nf != nil {
		go func() {
			log.Printf("subscribed to nats subject %q", *subject)
			if err := nf.Run(ctx, proc.HandleLine); err != nil && ctx.Err() == nil {
				log.Printf("nats feed stopped: %v", err)
			}
		}()
	}

	// Periodic archive flush and stats line.
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				proc.FlushArchive(context.Background())
				return
			case <-ticker.C:
				proc.FlushArchive(ctx)
			}
		}
	}()

	go func() {
		<-ctx.Done()
		st := proc.Snapshot()
		log.Printf("shutting down: lines=%d decoded=%d failed=%d", st.Lines, st.Decoded, st.Failed)
		os.Exit(0)
	}()

	if err := server.Run(); err != nil {
		log.Fatalf("api server: %v", err)
	}
}
