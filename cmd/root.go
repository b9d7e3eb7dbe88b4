package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"protetor/internal/config"
	"protetor/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "protetor",
	Short: "Protetor Selvagem - mundo perfeito",
	Long: `Protetor Selvagem serves the "perfect world" experience: a personalized
voice greeting for each visitor and an AI generated image of the world they describe.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.protetor")
	}

	// 环境变量设置
	viper.SetEnvPrefix("PROTETOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment variables")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "180s")
	viper.SetDefault("server.public_base_url", "")

	// OpenAI
	viper.SetDefault("openai.api_key", "")
	viper.SetDefault("openai.organization", "")
	viper.SetDefault("openai.base_url", "")
	viper.SetDefault("openai.image_model", "dall-e-3")
	viper.SetDefault("openai.image_size", "1024x1024")
	viper.SetDefault("openai.tts_model", "tts-1")
	viper.SetDefault("openai.tts_voice", "alloy")
	viper.SetDefault("openai.request_timeout", "0s")

	// AI (prompt enrichment)
	viper.SetDefault("ai.provider", "openai")
	viper.SetDefault("ai.model", "gpt-4o-mini")
	viper.SetDefault("ai.api_key", "")
	viper.SetDefault("ai.base_url", "")

	// Image
	viper.SetDefault("image.provider", "openai")
	viper.SetDefault("image.ark.base_url", "https://ark.cn-beijing.volces.com/api/v3")
	viper.SetDefault("image.ark.model", "doubao-seedream-3-0-t2i-250415")
	viper.SetDefault("image.ark.size", "1024x1024")

	// Speech
	viper.SetDefault("speech.provider", "openai")
	viper.SetDefault("speech.volcengine.api_url", "https://openspeech.bytedance.com/api/v1/tts")
	viper.SetDefault("speech.volcengine.cluster", "volcano_tts")
	viper.SetDefault("speech.volcengine.voice_type", "BV115_streaming")
	viper.SetDefault("speech.volcengine.sample_rate", 24000)
	viper.SetDefault("speech.volcengine.timeout", "30s")

	// Media
	viper.SetDefault("media.pages_dir", ".")
	viper.SetDefault("media.question_audio", "audio_pergunta_nome.mp3")

	// Storage
	viper.SetDefault("storage.type", "local")
	viper.SetDefault("storage.local.base_path", ".")

	// Breaker
	viper.SetDefault("breaker.max_failures", 5)
	viper.SetDefault("breaker.open_timeout", "30s")

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.time_format", "RFC3339")

	// MongoDB（留空则关闭生成历史）
	viper.SetDefault("mongo.uri", "")
	viper.SetDefault("mongo.database", "protetor")
	viper.SetDefault("mongo.max_pool_size", 20)
	viper.SetDefault("mongo.min_pool_size", 2)

	// Redis（留空则只做进程内去重）
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.lock_ttl", "2m")
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
