package config

import (
	"time"

	"github.com/spf13/viper"
)

type Argon2 struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength int
}

type Auth struct {
	JWTSecret []byte
	TokenTTL  time.Duration
	Argon2    Argon2
}

// LoadAuth returns token and password hashing settings with defaults
func LoadAuth() *Auth {
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)

	return &Auth{
		JWTSecret: []byte(viper.GetString("jwt.secret_key")),
		TokenTTL:  time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour,
		Argon2: Argon2{
			Time:       uint32(viper.GetInt("argon2.time")),
			Memory:     uint32(viper.GetInt("argon2.memory")),
			Threads:    uint8(viper.GetInt("argon2.threads")),
			KeyLength:  uint32(viper.GetInt("argon2.key_length")),
			SaltLength: viper.GetInt("argon2.salt_length"),
		},
	}
}
