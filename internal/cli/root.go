package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mvp-joe/jsxtract/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jsxtract",
	Short: "Extract JSX fragments into new components",
	Long: `jsxtract moves a fragment of JSX out of a class component's render method
into a new component, and replaces the fragment with a call site that passes
every name the fragment used as an attribute.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .jsxtract/config.yml, then ~/.jsxtract/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// loadConfig reads the file named by --config, or searches the working
// directory and home directory.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := viper.GetString("config"); path != "" {
		cfg, err = config.NewFileLoader(path).Load()
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newLogger logs to stderr with --verbose and discards otherwise.
func newLogger() *log.Logger {
	if viper.GetBool("verbose") {
		return log.New(os.Stderr, "jsxtract: ", 0)
	}
	return log.New(io.Discard, "", 0)
}
