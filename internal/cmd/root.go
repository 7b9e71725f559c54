// Package cmd wires the lexumbra command-line interface.
package cmd

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lexumbra/lexumbra/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "lexumbra",
	Short: "AI courtroom simulator",
	Long: `Lex Umbra simulates a civil trial between AI personas: a presiding
judge, opposing counsel, and a panel of jurors with hidden biases. File a
case, let counsel argue it, and watch the jury deliberate to a verdict.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/lexumbra/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// A .env file is the usual home for GEMINI_API_KEY in development.
	_ = godotenv.Load()

	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("LEXUMBRA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.ReadInConfig()
}
