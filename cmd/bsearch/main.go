package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Anish-Chanda/bytesearch/internal/config"
	"github.com/Anish-Chanda/bytesearch/internal/db"
	"github.com/Anish-Chanda/bytesearch/internal/hasher"
	"github.com/Anish-Chanda/bytesearch/internal/logger"
	"github.com/Anish-Chanda/bytesearch/internal/search"
	"github.com/Anish-Chanda/bytesearch/internal/service"
	"github.com/Anish-Chanda/bytesearch/internal/storage"
)

var version = "dev"

func usage() {
	fmt.Fprintf(os.Stderr, "usage: bsearch [flags] PATTERN\n\n")
	flag.PrintDefaults()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.StringP("algorithm", "a", search.DefaultAlgorithm.String(),
		"pattern matching algorithm ("+strings.Join(search.Algorithms(), ", ")+")")
	flag.String("hasher", hasher.DefaultName,
		"rolling hasher used by rabin-karp ("+strings.Join(hasher.Names(), ", ")+")")
	flag.Bool("stats", false, "print timing and match count")
	flag.Bool("record", false, "record the run in Postgres (needs BSEARCH_POSTGRES_DSN)")
	input := flag.StringP("input", "i", "", "file, s3://bucket/key, or - for stdin (default stdin)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println("bsearch", version)
		return nil
	}
	if flag.NArg() != 1 {
		usage()
		return fmt.Errorf("expected exactly one PATTERN, got %d arguments", flag.NArg())
	}
	pattern := flag.Arg(0)

	for _, name := range []string{"algorithm", "hasher", "stats", "record"} {
		if err := viper.BindPFlag(strings.ToUpper(name), flag.Lookup(name)); err != nil {
			return err
		}
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel)
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loader, err := newLoader(ctx, cfg, *input)
	if err != nil {
		return err
	}
	text, err := loader.Load(ctx, *input)
	if err != nil {
		return err
	}

	var store service.RunStore
	if cfg.Record {
		if err := db.Migrate(cfg.MigrationsDir, cfg.PostgresDSN); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		dbClient, err := db.New(cfg)
		if err != nil {
			return fmt.Errorf("db: %w", err)
		}
		defer dbClient.Close()
		store = dbClient
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	svc := service.New(store)
	res, err := svc.Each(ctx, service.Request{
		Text:      text,
		Pattern:   []byte(pattern),
		Algorithm: cfg.Algorithm,
		Hasher:    cfg.Hasher,
	}, func(pos int) error {
		_, err := fmt.Fprintln(out, pos)
		return err
	})
	if err != nil {
		return err
	}
	if res.Count == 0 {
		fmt.Fprintln(out, "no matches")
	}
	if cfg.Stats {
		fmt.Fprintf(out, "(done in %d μs)\n", res.Elapsed.Microseconds())
		fmt.Fprintf(out, "%d matches, %s", res.Count, res.Algorithm)
		if res.Hasher != "" {
			fmt.Fprintf(out, "/%s", res.Hasher)
		}
		fmt.Fprintln(out)
	}
	return nil
}

// newLoader only talks to AWS when the input lives in S3.
func newLoader(ctx context.Context, cfg *config.Config, input string) (*storage.Loader, error) {
	var objects storage.ObjectGetter
	if strings.HasPrefix(input, "s3://") {
		awsCfg, err := storage.LoadAWSConfig(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("AWS config: %w", err)
		}
		objects = storage.NewWithClient(awsCfg, cfg.AWSEndpointURL)
	}
	return storage.NewLoader(objects, os.Stdin, cfg.MaxTextBytes), nil
}
