package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App      *App      `json:"app" yaml:"app"`
	Redis    *Redis    `json:"redis" yaml:"redis"`
	Database *Database `json:"database" yaml:"database"`
	Jwt      *Jwt      `json:"jwt" yaml:"jwt"`
	Server   *Server   `json:"server" yaml:"server"`
	Feed     *Feed     `json:"feed" yaml:"feed"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

func New(filename string) *Config {
	// .env 不存在时忽略
	_ = godotenv.Load()

	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("解析 %s 读取错误: %v", filename, err))
	}

	return conf
}

// Parse 解析配置内容并补齐默认值与环境变量覆盖
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}

	conf.fill()
	conf.applyEnv()

	return &conf, nil
}

func (c *Config) fill() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.App.Name == "" {
		c.App.Name = "tribune"
	}
	if c.Redis == nil {
		c.Redis = &Redis{}
	}
	if c.Database == nil {
		c.Database = &Database{}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Feed == nil {
		c.Feed = &Feed{}
	}
	c.Feed.fill()
}

func (c *Config) applyEnv() {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.App.Env = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.Url = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Address = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Jwt.Secret = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Http = port
		}
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
