/*
Copyright © 2026 Ambition09
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "github.com/Ambition09/meeshodashboard/docs"
	"github.com/Ambition09/meeshodashboard/internal/config"
	"github.com/Ambition09/meeshodashboard/internal/database"
	"github.com/Ambition09/meeshodashboard/internal/service"
	"github.com/Ambition09/meeshodashboard/internal/web"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "meeshodash",
	Short: "Sales and claims dashboard for Meesho sellers",
	Long: `Reconciles the order and claims exports of a Meesho supplier panel against
the purchase cost of every SKU, and reports profit per SKU, claim recovery
and the grand total. For example:
1. meeshodash                                   serve the upload API and report requests
2. meeshodash report -o orders.xlsx -c claims.csv  write one report from files
3. meeshodash costs                             print the effective cost table
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.GetConfig()

		reconciler, err := newReconciler(cfg)
		if err != nil {
			log.Fatalf("初始化报表引擎失败: %v", err)
		}

		// 开启报表请求消费者
		if config.RabbitEnabled() {
			if err := config.InitRabbitMQ(); err != nil {
				log.Fatalf("初始化RabbitMQ失败: %v", err)
			}
			svc := &service.ReportService{
				Reconciler: reconciler,
				ReportDir:  cfg.Report.Dir,
				Publish:    config.PublishReportResponse,
			}
			if err := config.StartReportRequestConsumer(svc.HandleReportRequest); err != nil {
				log.Fatalf("启动报表请求消费者失败: %v", err)
			}
		} else {
			log.Info("rabbitmq.url is empty, report request consumer disabled")
		}

		// 设置优雅关闭
		setupGracefulShutdown()

		// 启动Web服务器
		handler := &web.Handler{
			Reconciler: reconciler,
			ReportDir:  cfg.Report.Dir,
			UploadDir:  cfg.Report.UploadDir,
		}
		if err := web.StartServer(handler, cfg.Port); err != nil {
			log.Infof("服务器关闭: %v", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".meeshodash.yaml", "config file (default is .meeshodash.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".meeshodash" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".meeshodash")
	}

	// MEESHODASH_REPORT_DIR overrides report.dir
	viper.SetEnvPrefix("meeshodash")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// Initialize global configuration, defaults apply without a config file
	if _, err := config.InitConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing config:", err)
	}

	// init logging
	initLogging()
}

// initLogging Initialize logging
func initLogging() {
	path, _ := os.Executable()
	_, exec := filepath.Split(path)

	cfg := config.GetConfig()
	config.InitLog(cfg.Log.LogBase, exec+".log", cfg.Log.Level)
}

// newReconciler builds the engine from the configuration. When MySQL is configured its
// sku_purchase_cost table overrides every other cost source.
func newReconciler(cfg *config.Config) (*service.Reconciler, error) {
	var dbCosts map[string]decimal.Decimal
	if cfg.MySQL.URL != "" {
		if err := database.InitDB(&cfg.MySQL); err != nil {
			return nil, fmt.Errorf("初始化数据库失败: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var err error
		dbCosts, err = database.NewCostRepository(database.GetDB()).LoadPurchaseCosts(ctx)
		if err != nil {
			return nil, err
		}
	}
	return service.NewReconciler(cfg, dbCosts)
}

// setupGracefulShutdown 设置优雅关闭机制
func setupGracefulShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		// 等待中断信号
		<-quit
		log.Info("正在关闭服务器...")

		// 优雅关闭 web 服务器（10秒超时）
		if err := web.ShutdownServer(10 * time.Second); err != nil {
			log.Errorf("服务器关闭出错: %v", err)
		}

		// 关闭其他资源
		if config.RabbitEnabled() {
			config.CloseRabbitMQ()
		}
		if err := database.CloseDB(); err != nil {
			log.Errorf("关闭数据库出错: %v", err)
		}

		log.Info("服务器已关闭")
		os.Exit(0)
	}()
}
