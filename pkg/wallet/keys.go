package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// DerivedAddress is an address derived from the wallet's HD tree, along with
// the coordinates it was derived at. It is produced deterministically and
// never mutated.
type DerivedAddress struct {
	Address        string
	DerivationPath string
	Index          uint32
	Branch         Branch
}

// DeriveSigningKeyPairOpts is the struct given to DeriveSigningKeyPair method
type DeriveSigningKeyPairOpts struct {
	DerivationPath string
}

func (o DeriveSigningKeyPairOpts) validate() error {
	derivationPath, err := ParseDerivationPath(o.DerivationPath)
	if err != nil {
		return err
	}
	return checkDerivationPath(derivationPath)
}

// DeriveSigningKeyPair derives the key pair of the provided derivation path
func (w *Wallet) DeriveSigningKeyPair(opts DeriveSigningKeyPairOpts) (
	*btcec.PrivateKey,
	*btcec.PublicKey,
	error,
) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	if err := w.validate(); err != nil {
		return nil, nil, err
	}

	hdNode, err := hdkeychain.NewKeyFromString(
		base58.Encode(w.masterKey),
	)
	if err != nil {
		return nil, nil, err
	}

	derivationPath, _ := ParseDerivationPath(opts.DerivationPath)
	for _, step := range derivationPath {
		hdNode, err = hdNode.Derive(step)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", ErrKeyDerivation, err)
		}
	}

	privateKey, err := hdNode.ECPrivKey()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrKeyDerivation, err)
	}
	publicKey, err := hdNode.ECPubKey()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrKeyDerivation, err)
	}

	return privateKey, publicKey, nil
}

// PrivateKeyForPath re-derives the private key for the given absolute path.
// Used at signing time, one call per transaction input.
func (w *Wallet) PrivateKeyForPath(path string) (*btcec.PrivateKey, error) {
	prvkey, _, err := w.DeriveSigningKeyPair(DeriveSigningKeyPairOpts{
		DerivationPath: path,
	})
	return prvkey, err
}

// DeriveAddressOpts is the struct given to DeriveAddressAtIndex method
type DeriveAddressOpts struct {
	Index   uint32
	Branch  Branch
	Network *chaincfg.Params
}

func (o DeriveAddressOpts) validate() error {
	if o.Network == nil {
		return ErrNullNetwork
	}
	return o.Branch.validate()
}

// DeriveAddressAtIndex derives the native-segwit address at
// m/84'/{coin}'/0'/{branch}/{index}. Same inputs always yield the same
// address.
func (w *Wallet) DeriveAddressAtIndex(opts DeriveAddressOpts) (*DerivedAddress, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := w.validate(); err != nil {
		return nil, err
	}

	path := Bip84Path(opts.Network, opts.Branch, opts.Index)
	_, pubkey, err := w.DeriveSigningKeyPair(DeriveSigningKeyPairOpts{
		DerivationPath: path.String(),
	})
	if err != nil {
		return nil, err
	}

	witnessProg := btcutil.Hash160(pubkey.SerializeCompressed())
	addr, err := btcutil.NewAddressWitnessPubKeyHash(witnessProg, opts.Network)
	if err != nil {
		return nil, err
	}

	return &DerivedAddress{
		Address:        addr.EncodeAddress(),
		DerivationPath: path.String(),
		Index:          opts.Index,
		Branch:         opts.Branch,
	}, nil
}

// DeriveAddressesOpts is the struct given to DeriveAddresses method
type DeriveAddressesOpts struct {
	StartIndex uint32
	Count      int
	Branch     Branch
	Network    *chaincfg.Params
}

// DeriveAddresses derives Count sequential addresses starting at StartIndex
// on the given branch.
func (w *Wallet) DeriveAddresses(opts DeriveAddressesOpts) ([]DerivedAddress, error) {
	addresses := make([]DerivedAddress, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		addr, err := w.DeriveAddressAtIndex(DeriveAddressOpts{
			Index:   opts.StartIndex + uint32(i),
			Branch:  opts.Branch,
			Network: opts.Network,
		})
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, *addr)
	}
	return addresses, nil
}
