package config

// Jwt 鉴权配置
type Jwt struct {
	Secret string `json:"secret" yaml:"secret"`
}
