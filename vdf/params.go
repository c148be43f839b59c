package vdf

import (
	"embed"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"
)

//go:embed params/*.json
var paramsFS embed.FS

var paramsFile = map[string]string{
	"default": "params/default.json",
}

// Params is the injected VDF group configuration. The modulus and the
// iteration bounds rotate by deployment; nothing here is a compile-time
// constant.
type Params struct {
	ID            string
	Modulus       *big.Int
	MinIterations uint64
	MaxIterations uint64

	// modulus width in bytes; every group element on the wire is exactly
	// this long, big-endian.
	elemLen int
}

type paramsRaw struct {
	ID            string `json:"id"`
	Modulus       string `json:"modulus"`
	MinIterations uint64 `json:"min_iterations"`
	MaxIterations uint64 `json:"max_iterations"`
}

// ReadParams loads VDF parameters by well-known id or from an explicit path.
func ReadParams(id string) (*Params, error) {
	var data []byte
	var err error
	path, ok := paramsFile[id]
	if ok {
		data, err = paramsFS.ReadFile(path)
	} else {
		data, err = os.ReadFile(id)
	}
	if err != nil {
		return nil, err
	}
	p := &Params{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Params) UnmarshalJSON(data []byte) error {
	var raw paramsRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	mod, ok := new(big.Int).SetString(strings.TrimPrefix(raw.Modulus, "0x"), 16)
	if !ok {
		return fmt.Errorf("vdf params %q: bad modulus hex", raw.ID)
	}
	p.ID = raw.ID
	p.MinIterations = raw.MinIterations
	p.MaxIterations = raw.MaxIterations
	p.Modulus = mod
	return p.validate()
}

// NewParams builds parameters directly, for tests and tooling.
func NewParams(id string, modulus *big.Int, minIter, maxIter uint64) (*Params, error) {
	p := &Params{ID: id, Modulus: modulus, MinIterations: minIter, MaxIterations: maxIter}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Params) validate() error {
	if p.Modulus == nil || p.Modulus.BitLen() < 128 {
		return fmt.Errorf("vdf params %q: modulus too small", p.ID)
	}
	if p.Modulus.Bit(0) == 0 {
		return fmt.Errorf("vdf params %q: modulus must be odd", p.ID)
	}
	if p.MinIterations == 0 || p.MaxIterations < p.MinIterations {
		return fmt.Errorf("vdf params %q: bad iteration bounds [%d, %d]", p.ID, p.MinIterations, p.MaxIterations)
	}
	p.elemLen = (p.Modulus.BitLen() + 7) / 8
	return nil
}

// ElementLength is the byte width of one serialized group element.
func (p *Params) ElementLength() int {
	return p.elemLen
}

func (p *Params) MarshalJSON() ([]byte, error) {
	return json.Marshal(paramsRaw{
		ID:            p.ID,
		Modulus:       "0x" + p.Modulus.Text(16),
		MinIterations: p.MinIterations,
		MaxIterations: p.MaxIterations,
	})
}
