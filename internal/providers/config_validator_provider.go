package providers

import (
	"fmt"
	"github.com/gookit/validate"
	"rockbot/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return v.Errors
	}
	if c.conf.Persistence.Driver == "redis" && c.conf.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when persistence.driver is redis")
	}
	if c.conf.Bot.Enabled && c.conf.Bot.Token == "" {
		return fmt.Errorf("bot.token is required when the bot is enabled")
	}
	return nil
}
