package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic is null")
	// ErrNullMasterKey ...
	ErrNullMasterKey = errors.New("master key is null")
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrNullTargetAddress ...
	ErrNullTargetAddress = errors.New("target address must not be null")

	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrInvalidDerivationPath ...
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	// ErrInvalidDerivationPathLength ...
	ErrInvalidDerivationPathLength = errors.New(
		"derivation path must be an absolute path in the form " +
			"\"m/purpose'/coin'/account'/branch/index\"",
	)
	// ErrInvalidDerivationPathAccount ...
	ErrInvalidDerivationPathAccount = errors.New(
		"derivation path's purpose, coin and account must be hardened (suffix \"'\")",
	)
	// ErrInvalidTargetAddress ...
	ErrInvalidTargetAddress = errors.New("target address must be a valid address")
	// ErrInvalidChangeAddress ...
	ErrInvalidChangeAddress = errors.New("change address must be a valid address")
	// ErrInvalidBranch ...
	ErrInvalidBranch = errors.New("branch must be either 0 (receive) or 1 (change)")

	// ErrEmptyInputs ...
	ErrEmptyInputs = errors.New("input list must not be empty")
	// ErrZeroInputValue ...
	ErrZeroInputValue = errors.New("input value must not be zero")
	// ErrZeroOutputAmount ...
	ErrZeroOutputAmount = errors.New("output amount must not be zero")

	// ErrKeyDerivation is returned when the HD derivation of a path yields no
	// usable key pair. This is astronomically rare and treated as fatal.
	ErrKeyDerivation = errors.New("key derivation produced no usable key")
)

// Wallet allows to create an HD wallet from a BIP39 mnemonic, derive BIP84
// addresses and key pairs, and sign native-segwit transactions with them.
type Wallet struct {
	mnemonic  string
	masterKey []byte
}

// NewWalletOpts is the struct given to the NewWallet method
type NewWalletOpts struct {
	EntropySize int
}

func (o NewWalletOpts) validate() error {
	if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewWallet creates a new wallet with a freshly generated mnemonic
func NewWallet(opts NewWalletOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	mnemonic, err := generateMnemonic(opts.EntropySize)
	if err != nil {
		return nil, err
	}

	return NewWalletFromMnemonic(NewWalletFromMnemonicOpts{Mnemonic: mnemonic})
}

// NewWalletFromMnemonicOpts is the struct given to the NewWalletFromMnemonic method
type NewWalletFromMnemonicOpts struct {
	Mnemonic string
}

func (o NewWalletFromMnemonicOpts) validate() error {
	if len(o.Mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if !IsMnemonicValid(o.Mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// NewWalletFromMnemonic generates the HD master key from the provided
// mnemonic. The same mnemonic always yields the same wallet.
func NewWalletFromMnemonic(opts NewWalletFromMnemonicOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	seed := generateSeedFromMnemonic(opts.Mnemonic)
	masterKey, err := generateMasterKey(seed)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		mnemonic:  opts.Mnemonic,
		masterKey: masterKey,
	}, nil
}

func (w *Wallet) validate() error {
	if len(w.masterKey) <= 0 {
		return ErrNullMasterKey
	}
	if len(w.mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if !IsMnemonicValid(w.mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// Mnemonic is the getter for the wallet's mnemonic
func (w *Wallet) Mnemonic() (string, error) {
	if err := w.validate(); err != nil {
		return "", err
	}
	return w.mnemonic, nil
}

// Fingerprint returns a one-way identifier for the wallet, safe to persist
// and log. It is the hex-encoded SHA256 of the serialized master key, so the
// mnemonic cannot be recovered from it.
func (w *Wallet) Fingerprint() string {
	hash := sha256.Sum256(w.masterKey)
	return hex.EncodeToString(hash[:8])
}
