package env

import "strings"

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

func (e Environment) IsDevelopment() bool { return e.normalize() == Development }
func (e Environment) IsProduction() bool  { return e.normalize() == Production }

func (e Environment) normalize() Environment {
	return Environment(strings.ToLower(strings.TrimSpace(string(e))))
}
