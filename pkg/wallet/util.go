package wallet

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/vulpemventures/go-bip39"
)

func generateMnemonic(entropySize int) (string, error) {
	entropy, err := bip39.NewEntropy(entropySize)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

func generateSeedFromMnemonic(mnemonic string) []byte {
	return bip39.NewSeed(mnemonic, "")
}

// IsMnemonicValid reports whether the mnemonic passes the BIP39 wordlist and
// checksum validation.
func IsMnemonicValid(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

func generateMasterKey(seed []byte) ([]byte, error) {
	hdNode, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	return base58.Decode(hdNode.String()), nil
}

// ValidateAddress reports whether the given address decodes correctly and
// belongs to the given network. It does not verify ownership.
func ValidateAddress(addr string, net *chaincfg.Params) bool {
	if net == nil {
		return false
	}
	decoded, err := btcutil.DecodeAddress(addr, net)
	if err != nil {
		return false
	}
	return decoded.IsForNet(net)
}

// OutputScript returns the scriptPubKey paying to the given address.
func OutputScript(addr string, net *chaincfg.Params) ([]byte, error) {
	decoded, err := btcutil.DecodeAddress(addr, net)
	if err != nil {
		return nil, err
	}
	if !decoded.IsForNet(net) {
		return nil, ErrInvalidTargetAddress
	}
	return txscript.PayToAddrScript(decoded)
}
