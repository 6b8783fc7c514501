package app

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/jaiguruastro/astroremedy/pkg/cryptox"
	"github.com/jaiguruastro/astroremedy/pkg/jwtx"
)

// initSigner loads the session signing key, or generates a throwaway one
// when no key file is configured. Tokens from an ephemeral key stop
// verifying after a restart.
func initSigner(cfg Config, logger *slog.Logger) (*jwtx.Signer, error) {
	var (
		key ed25519.PrivateKey
		err error
	)
	if cfg.SigningKeyFile != "" {
		key, err = cryptox.LoadOrCreateEd25519Key(cfg.SigningKeyFile)
	} else {
		key, err = cryptox.GenerateEd25519Key()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	kid := keyID(key.Public().(ed25519.PublicKey))
	signer, err := jwtx.NewSigner(kid, key)
	if err != nil {
		return nil, err
	}

	logger.Info("session signing key loaded", "kid", kid, "persistent", cfg.SigningKeyFile != "")
	return signer, nil
}

// keyID is the first eight bytes of the public key's SHA-256, hex encoded.
func keyID(pub ed25519.PublicKey) string {
	sum := sha256.Sum256(pub)
	return hex.EncodeToString(sum[:8])
}
