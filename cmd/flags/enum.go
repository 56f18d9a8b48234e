// Package flags holds cli flag helpers shared by the ssv-keys commands.
package flags

// via https://github.com/urfave/cli/issues/602

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

// EnumValue allows the cli to present a fixed set of string values.
type EnumValue struct {
	Name        string
	Usage       string
	EnvVars     []string
	Destination *string
	Enum        []string
	Value       string
}

// Set accepts value only when it is one of the allowed values.
func (e *EnumValue) Set(value string) error {
	for _, enum := range e.Enum {
		if strings.EqualFold(enum, value) {
			*e.Destination = enum
			return nil
		}
	}
	return fmt.Errorf("allowed values are %s", strings.Join(e.Enum, ", "))
}

func (e *EnumValue) String() string {
	if e.Destination == nil || *e.Destination == "" {
		return e.Value
	}
	return *e.Destination
}

// GenericFlag wraps the EnumValue in a GenericFlag value so that it satisfies the cli.Flag interface.
func (e EnumValue) GenericFlag() *cli.GenericFlag {
	*e.Destination = e.Value
	var i cli.Generic = &e
	return &cli.GenericFlag{
		Name:    e.Name,
		Usage:   fmt.Sprintf("%s (%s)", e.Usage, strings.Join(e.Enum, ", ")),
		EnvVars: e.EnvVars,
		Value:   i,
	}
}
