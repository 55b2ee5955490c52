package config

import "fmt"

// Redis Redis配置信息
type Redis struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`
}

// Enabled 未配置地址时不启用缓存
func (r *Redis) Enabled() bool {
	return r != nil && r.Address != ""
}

func (r *Redis) Addr() string {
	if r.Port == 0 {
		return r.Address
	}
	return fmt.Sprintf("%s:%d", r.Address, r.Port)
}
