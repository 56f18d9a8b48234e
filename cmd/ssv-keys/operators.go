package main

import (
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/ssvlabs/ssv-keys/io/file"
	"github.com/ssvlabs/ssv-keys/operator"
	"github.com/urfave/cli/v2"
)

type operatorsDocument struct {
	Operators []operator.Operator `json:"operators"`
}

// operatorsFromContext reads operators from --operators-file or from the id and key lists.
func operatorsFromContext(cliCtx *cli.Context) ([]operator.Operator, error) {
	if path := cliCtx.String(OperatorsFileFlag.Name); path != "" {
		return loadOperatorsFile(path)
	}
	ids := cliCtx.String(OperatorIDsFlag.Name)
	keys := cliCtx.String(OperatorKeysFlag.Name)
	if ids == "" || keys == "" {
		return nil, errors.Errorf("either --%s or both --%s and --%s are required",
			OperatorsFileFlag.Name, OperatorIDsFlag.Name, OperatorKeysFlag.Name)
	}
	return parseOperatorLists(ids, keys)
}

// loadOperatorsFile accepts a JSON or YAML list of operators, or an object with an "operators" list.
func loadOperatorsFile(path string) ([]operator.Operator, error) {
	b, err := file.ReadFileAsBytes(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read operators file %s", path)
	}
	var list []operator.Operator
	if err := yaml.Unmarshal(b, &list); err == nil {
		return list, nil
	}
	var doc operatorsDocument
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, errors.Wrapf(err, "could not parse operators file %s", path)
	}
	return doc.Operators, nil
}

func parseOperatorLists(ids, keys string) ([]operator.Operator, error) {
	idParts := splitList(ids)
	parsed := make([]uint64, len(idParts))
	for i, s := range idParts {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid operator id %q", s)
		}
		parsed[i] = id
	}
	return operator.FromLists(parsed, splitList(keys))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
