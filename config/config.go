package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// SysConfig system level configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig admin web server configuration
type WebConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	JwtSecret string `yaml:"jwt_secret"`
}

// DBConfig database configuration
type DBConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
}

// LogConfig logger configuration
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "ChainTrace",
		Location: "UTC",
		Workdir:  "/var/chaintrace",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1816,
		JwtSecret: "9b6de5cc-0731-4bf1-xxxx-0f568ac9da37",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "chaintrace",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/chaintrace/chaintrace.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok {
		f(v)
	}
}

// LoadConfig reads path into an AppConfig, falling back to defaults when
// the file is absent, and applies environment overrides.
func LoadConfig(path string) *AppConfig {
	// Work on a copy so overrides never leak into the shared defaults.
	defaults := *DefaultAppConfig
	cfg := &defaults
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			fileCfg := new(AppConfig)
			if err := yaml.Unmarshal(data, fileCfg); err == nil {
				cfg = fileCfg
			}
		}
	}

	setEnvValue("CHAINTRACE_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("CHAINTRACE_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("CHAINTRACE_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("CHAINTRACE_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("CHAINTRACE_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("CHAINTRACE_WEB_JWT_SECRET", func(v string) { cfg.Web.JwtSecret = v })

	return cfg
}
