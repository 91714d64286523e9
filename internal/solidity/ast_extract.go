package solidity

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// ExtractAST pulls the raw `output.sources[file].ast` JSON blob back
// out of a compiled solc.Output, for internal/ast.FromSolc to lower.
// It re-marshals the output and decodes it into a minimal local struct
// rather than reading solc.Output's own struct fields, since the
// wrapper only needs the wire-format field solc itself documents
// (sources[file].ast), and this sidesteps depending on solc-go's exact
// Go-side field naming.
func ExtractAST(output interface{}, file string) ([]byte, error) {
	raw, err := json.Marshal(output)
	if err != nil {
		return nil, errors.Wrap(err, "marshal solc output")
	}
	var decoded struct {
		Sources map[string]struct {
			AST json.RawMessage `json:"ast"`
		} `json:"sources"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errors.Wrap(err, "unmarshal solc output")
	}
	source, ok := decoded.Sources[file]
	if !ok {
		return nil, fmt.Errorf("no ast for source %q in solc output", file)
	}
	return source.AST, nil
}
