package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/chatguard/internal"
	"github.com/iksnae/chatguard/internal/config"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	apiURL     string
	configPath string
	langFlag   string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// cfg is populated by PersistentPreRunE before any subcommand runs
var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatguard",
	Short: "Audit chat logs and screenshots for toxic messages",
	Long: `A CLI client for the ChatGuard analysis backend.

Submit a chat screenshot or a raw chat log, get back a per-message
toxicity verdict with an overall safety score, and browse the audit
sessions the backend has stored.

Quick Start:
  chatguard audit image chat.png        # Analyze a screenshot
  chatguard audit text - < chat.txt     # Analyze a chat log from stdin
  chatguard history list                # Browse stored sessions
  chatguard history show 12 --render    # View one session as markdown
  chatguard healthcheck                 # Check the backend is up

Configuration is read from ~/.chatguard/config.yaml and CHATGUARD_* variables.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if apiURL != "" {
			loaded.API.BaseURL = apiURL
		}
		if langFlag != "" {
			loaded.Language = langFlag
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = loaded

		internal.SetLogLevel(internal.ParseLogLevel(cfg.Log.Level))
		if verbose {
			internal.SetVerbose(true)
		}
		internal.LogDebug("backend %s, data dir %s", cfg.API.BaseURL, cfg.Storage.Dir)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newClient builds a backend client from the loaded config
func newClient() *internal.Client {
	return internal.NewClient(internal.Options{
		BaseURL:        cfg.API.BaseURL,
		DefaultTimeout: cfg.API.Timeout,
		ImageTimeout:   cfg.API.ImageTimeout,
		TextTimeout:    cfg.API.TextTimeout,
	})
}

// currentLanguage resolves the UI language: --lang or config first, then the
// stored preference, then the default
func currentLanguage() internal.Language {
	if cfg.Language != "" {
		if lang, err := internal.ParseLanguage(cfg.Language); err == nil {
			return lang
		}
	}

	prefs, err := internal.OpenPreferenceStore(cfg.Storage.Dir)
	if err != nil {
		internal.LogWarn("Failed to open preferences: %v", err)
		return internal.DefaultLanguage
	}
	defer func() { _ = prefs.Close() }()

	lang, err := prefs.LoadLanguage()
	if err != nil {
		internal.LogWarn("%v", err)
	}
	return lang
}

func newTranslator() internal.Translator {
	return internal.NewTranslator(currentLanguage())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.chatguard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "UI language for this run (id, en)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
