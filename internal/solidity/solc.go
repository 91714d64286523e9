package solidity

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Notation/solc-go"
	"github.com/pkg/errors"

	"solcheck/internal/util"
)

// for older version, compiler wrapper is not standard
// less than version 0.5.0, use compileJSON
// greater or equal 0.5.0 and less than 0.6.0, use solidity_compile('string', 'number')
// greater or equal 0.6.0, use solidity_compile('string', 'number', 'number')

// solc compiler input & output docs:
// https://docs.soliditylang.org/en/v0.5.0/using-the-compiler.html#compiler-input-and-output-json-description

const (
	SolcBinaryDir      = "./solc_binary/"
	SolcBinaryMetaFile = "list.json"
	SolcBinaryEndpoint = "https://raw.githubusercontent.com/ethereum/solc-bin/gh-pages/wasm/"
)

func PrepareSolcBinary(version string) (string, error) {
	solcMeta, err := NewSolcBinaryMeta()
	if err != nil {
		return "", errors.Wrap(err, "NewSolcBinaryMeta")
	}
	solcFile, err := solcMeta.GetSolcBinary(version)
	if err != nil {
		return "", errors.Wrap(err, "GetSolcBinary")
	}
	return solcFile, nil
}

var (
	solcJsonCacheMu sync.Mutex
	solcJsonCache   = map[string]*solc.Output{}
)

// GetSolcJson compiles file and returns its solc AST/metadata output,
// keyed in an in-memory cache by the source's content hash so repeated
// verify runs over an unchanged file (or one that resolves to the same
// content under a different path) skip re-invoking solc entirely.
func GetSolcJson(file string) (*solc.Output, error) {
	fileData, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	key := util.ContentHash(string(fileData))
	solcJsonCacheMu.Lock()
	if cached, ok := solcJsonCache[key]; ok {
		solcJsonCacheMu.Unlock()
		return cached, nil
	}
	solcJsonCacheMu.Unlock()

	version, err := ExtractVersionFromData(fileData)
	if err != nil {
		return nil, fmt.Errorf("ExtractVersionFromData: %v", err)
	}
	solcFile, err := PrepareSolcBinary(version)
	if err != nil {
		return nil, fmt.Errorf("PrepareSolcBinary: %v", err)
	}
	compiler, err := solc.NewFromFile(solcFile, strings.TrimPrefix(version, "^"))
	if err != nil {
		return nil, err
	}
	// defer compiler.Close()
	input := &solc.Input{
		Language: "Solidity",
		Sources: map[string]solc.SourceIn{
			file: {Content: string(fileData)},
		},
		Settings: solc.Settings{
			Optimizer: solc.Optimizer{
				Enabled: false,
			},
			OutputSelection: map[string]map[string][]string{
				"*": {
					"*": []string{
						"metadata",
					},
					"": []string{
						"ast",
					},
				},
			},
		},
	}
	out, err := compiler.Compile(input)
	if err != nil {
		return nil, err
	}

	solcJsonCacheMu.Lock()
	solcJsonCache[key] = out
	solcJsonCacheMu.Unlock()
	return out, nil
}

const PragmaSolidity = "pragma solidity "

// ExtractVersionFromFile 提取版本号
func ExtractVersionFromFile(file string) (string, error) {
	fileData, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return ExtractVersionFromData(fileData)
}

// ExtractVersionFromData 提取版本号
func ExtractVersionFromData(fileData []byte) (string, error) {
	lines := strings.Split(string(fileData), "\n")
	for i := range lines {
		if strings.HasPrefix(lines[i], PragmaSolidity) {
			pre := strings.TrimPrefix(lines[i], PragmaSolidity)
			return strings.TrimRight(pre, ";"), nil
		}
	}
	return "", nil
}
