package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	goSecurity "github.com/MrEthical07/goSecurity"
)

var VERSION = "0.0.0-dev.0"

const envPrefix = "GOSECURITY_"

var rootCmd = &cobra.Command{
	Use:               "gosecurity",
	Version:           VERSION,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
	Short:             "Encrypt values, manage RSA keys and issue JWTs",
	Long: `gosecurity wraps the goSecurity library for shell use.

Settings come from, in increasing priority: built-in defaults, the file given
by --config (YAML or JSON), GOSECURITY_* environment variables (a .env file in
the working directory is loaded first) and command flags.`,
	PersistentPreRunE: setup,
}

type rootFlags struct {
	config  string
	envFile string
	keysDir string
	verbose bool
	output  string
}

var rootArgs = rootFlags{
	envFile: ".env",
	output:  "text",
}

var (
	logger = logr.Discard()
	sec    *goSecurity.Security
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootArgs.config, "config", "c", os.Getenv(envPrefix+"CONFIG"),
		"path to a YAML or JSON configuration file")
	rootCmd.PersistentFlags().StringVar(&rootArgs.envFile, "env-file", rootArgs.envFile,
		"dotenv file loaded before reading GOSECURITY_* variables; missing files are ignored")
	rootCmd.PersistentFlags().StringVar(&rootArgs.keysDir, "keys-dir", "",
		"directory holding public.key and private.key (overrides rsa.urlPath)")
	rootCmd.PersistentFlags().BoolVarP(&rootArgs.verbose, "verbose", "v", false,
		"enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVarP(&rootArgs.output, "output", "o", rootArgs.output,
		"output format: text or json")
	rootCmd.SetOut(os.Stdout)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	_ = zap.L().Sync()
	if err != nil {
		rootCmd.PrintErrf("✗ %v\n", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	if rootArgs.envFile != "" {
		if err := godotenv.Load(rootArgs.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	zl, err := newZap(rootArgs.verbose)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(zl)
	logger = zapr.NewLogger(zl)

	cfg := goSecurity.DefaultConfig()
	path := rootArgs.config
	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		if cfg, err = goSecurity.LoadConfig(path); err != nil {
			return err
		}
	}
	applyEnv(&cfg)
	if rootArgs.keysDir != "" {
		cfg.RSA.URLPath = rootArgs.keysDir
	}

	switch rootArgs.output {
	case "text", "json":
	default:
		return errors.New("--output must be text or json")
	}

	sec, err = goSecurity.New().WithConfig(cfg).WithLogger(logger).Build()
	if err != nil {
		return err
	}
	logger.V(1).Info("configuration loaded", "command", cmd.CommandPath(), "config", path)
	return nil
}

func newZap(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// applyEnv overlays GOSECURITY_* variables onto cfg.
func applyEnv(cfg *goSecurity.Config) {
	set := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("AES_METHOD", &cfg.AES.Method)
	set("AES_KEY", &cfg.AES.Key)
	set("AES_IV", &cfg.AES.IV)
	set("KEYS_DIR", &cfg.RSA.URLPath)
	set("JWT_ISSUER", &cfg.JWT.Issuer)
	set("JWT_AUDIENCE", &cfg.JWT.Audience)
	set("JWT_ALGORITHM", &cfg.JWT.Algorithm)
	set("JWT_SECRET", &cfg.JWT.Secret)
	set("KEY_STORE", &cfg.KeyStore.Backend)
	set("REDIS_ADDR", &cfg.KeyStore.Redis.Addr)
}
