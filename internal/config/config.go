package config

import (
	"github.com/blues/cfc/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Chain   ChainConfig   `mapstructure:"chain"`
	Session SessionConfig `mapstructure:"session"`
	Task    TaskConfig    `mapstructure:"task"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// ChainConfig 链配置
type ChainConfig struct {
	RpcUrl         string `mapstructure:"rpc_url"`          // 首选RPC节点URL（注入的钱包节点）
	FallbackRpcUrl string `mapstructure:"fallback_rpc_url"` // 本地兜底RPC节点URL
	ChainId        int64  `mapstructure:"chain_id"`         // 链ID
	PrivateKey     string `mapstructure:"private_key"`      // 私钥，为空表示未授权访问
	ContractAddr   string `mapstructure:"contract_addr"`    // 众筹根合约地址
	StartBlock     uint64 `mapstructure:"start_block"`      // 事件查询起始区块号
	WorkerPoolSize int    `mapstructure:"worker_pool_size"` // 项目枚举并发数
}

// SessionConfig 本地会话存储配置
type SessionConfig struct {
	Path string `mapstructure:"path"` // SQLite文件路径
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // 秒
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/cfc")

	// 设置默认值
	viper.SetDefault("server.port", "8081")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("chain.rpc_url", "")
	viper.SetDefault("chain.fallback_rpc_url", "http://localhost:8545")
	viper.SetDefault("chain.chain_id", 31337)
	viper.SetDefault("chain.contract_addr", "0x5FbDB2315678afecb367f032d93F642f64180aa3")
	viper.SetDefault("chain.start_block", 0)
	viper.SetDefault("chain.worker_pool_size", 8)
	viper.SetDefault("session.path", "cfc.db")
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
