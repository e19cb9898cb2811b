package creature

import (
	"strings"

	arenaerr "github.com/jwebster45206/poke-arena/pkg/errors"
)

// Environment is the battlefield a narration takes place on.
type Environment string

const (
	EnvVolcano Environment = "Volcan"
	EnvOcean   Environment = "Océan"
	EnvForest  Environment = "Forêt"
	EnvField   Environment = "Champ"
	EnvDesert  Environment = "Désert"
	EnvSpace   Environment = "Espace"

	DefaultEnvironment = EnvVolcano
)

// Environments returns every environment in display order.
func Environments() []Environment {
	return []Environment{EnvVolcano, EnvOcean, EnvForest, EnvField, EnvDesert, EnvSpace}
}

// ParseEnvironment matches s case-insensitively against the known
// environments. Blank input selects DefaultEnvironment.
func ParseEnvironment(s string) (Environment, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultEnvironment, nil
	}
	for _, env := range Environments() {
		if strings.EqualFold(string(env), s) {
			return env, nil
		}
	}
	return "", arenaerr.InputValidationf("unknown environment %q", s).
		WithMeta("environment", s)
}

func (e Environment) String() string {
	return string(e)
}
