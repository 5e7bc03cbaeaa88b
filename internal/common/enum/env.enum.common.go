package enum

import "github.com/samber/lo"

type EnvEnum string

const (
	LOCAL       EnvEnum = "local"
	DEVELOPMENT EnvEnum = "development"
	STAGING     EnvEnum = "staging"
	PRODUCTION  EnvEnum = "production"
)

var envs = []EnvEnum{LOCAL, DEVELOPMENT, STAGING, PRODUCTION}

func (e EnvEnum) IsValid() bool {
	return lo.Contains(envs, e)
}

// Verbose reports whether gin debug output and SQL logging are on.
func (e EnvEnum) Verbose() bool {
	return e == LOCAL || e == DEVELOPMENT
}
