package oappscan

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/lzkit/oappscan/internal/utils/safecast"
)

const (
	defaultRPCEndpoint = "https://api.mainnet-beta.solana.com"
	defaultEID         = 30101
	defaultRecordLen   = 1654
)

// Config is the typed CLI configuration; every recognized option is an
// explicit field.
type Config struct {
	RPCEndpoint   string `validate:"required,url"`
	Program       string `validate:"required"`
	EID           uint32 `validate:"required"`
	BatchMode     bool
	CandidateEIDs []uint32
	RecordLen     int `validate:"gt=0"`
	JSONOutput    bool
	Verbose       bool
}

// Validate runs tag-based validation over the configuration.
func (c *Config) Validate() error {
	validate := validator.New()

	return validate.Struct(c)
}

// resolveEndpoint picks the RPC endpoint: explicit flag, then RPC_URL from
// the environment (a .env file is honored when present), then the public
// mainnet default.
func resolveEndpoint(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	_ = godotenv.Load(".env")
	if v := os.Getenv("RPC_URL"); v != "" {
		return v
	}

	return defaultRPCEndpoint
}

// parseEIDList parses the comma-separated candidate endpoint id override.
func parseEIDList(s string) ([]uint32, error) {
	parts := strings.Split(s, ",")
	out := make([]uint32, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		v, err := cast.ToInt64E(part)
		if err != nil {
			return nil, fmt.Errorf("invalid endpoint id %q: %w", part, err)
		}

		eid, err := safecast.Int64ToUint32(v)
		if err != nil {
			return nil, fmt.Errorf("invalid endpoint id %q: %w", part, err)
		}

		out = append(out, eid)
	}

	if len(out) == 0 {
		return nil, errors.New("empty endpoint id list")
	}

	return out, nil
}
