package wallet

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// DerivationPath is the internal representation of a hierarchical
// deterministic wallet account
type DerivationPath []uint32

// Branch identifies one of the two BIP44 chains of an account.
type Branch uint32

const (
	// BranchReceive is the external chain holding deposit addresses.
	BranchReceive Branch = 0
	// BranchChange is the internal chain holding change addresses.
	BranchChange Branch = 1

	// Purpose is the BIP84 native-segwit purpose index.
	Purpose = 84
	// Account is the only account index in use.
	Account = 0
)

func (b Branch) validate() error {
	if b != BranchReceive && b != BranchChange {
		return ErrInvalidBranch
	}
	return nil
}

// Bip84Path returns the absolute derivation path
// m/84'/{coin}'/0'/{branch}/{index} for the given network and branch.
func Bip84Path(net *chaincfg.Params, branch Branch, index uint32) DerivationPath {
	return DerivationPath{
		hdkeychain.HardenedKeyStart + Purpose,
		hdkeychain.HardenedKeyStart + net.HDCoinType,
		hdkeychain.HardenedKeyStart + Account,
		uint32(branch),
		index,
	}
}

// ParseDerivationPath converts a derivation path string to the
// internal binary representation
func ParseDerivationPath(strPath string) (DerivationPath, error) {
	var path DerivationPath

	elems := strings.Split(strPath, "/")
	switch {
	case strPath == "":
		return nil, ErrNullDerivationPath

	case containsEmptyString(elems):
		return nil, ErrInvalidDerivationPath
	case len(elems) < 2:
		return nil, ErrInvalidDerivationPath

	case len(elems) > 1:
		if strings.TrimSpace(elems[0]) == "m" {
			elems = elems[1:]
		}

	default:
		return nil, ErrInvalidDerivationPath
	}

	// all remaining elems are relative, append one by one
	for _, elem := range elems {
		elem = strings.TrimSpace(elem)
		var value uint32

		if strings.HasSuffix(elem, "'") {
			value = hdkeychain.HardenedKeyStart
			elem = strings.TrimSpace(strings.TrimSuffix(elem, "'"))
		}

		// use big int for convertion
		bigval, ok := new(big.Int).SetString(elem, 0)
		if !ok {
			return nil, fmt.Errorf("invalid elem '%s' in path", elem)
		}

		max := math.MaxUint32 - value
		if bigval.Sign() < 0 || bigval.Cmp(big.NewInt(int64(max))) > 0 {
			if value == 0 {
				return nil, fmt.Errorf("elem %v must be in range [0, %d]", bigval, max)
			}
			return nil, fmt.Errorf("elem %v must be in hardened range [0, %d]", bigval, max)
		}
		value += uint32(bigval.Uint64())

		path = append(path, value)
	}

	return path, nil
}

// String converts a binary derivation path to its canonical representation
func (path DerivationPath) String() string {
	if len(path) <= 0 {
		return ""
	}

	result := "m"
	for _, component := range path {
		var hardened bool
		if component >= hdkeychain.HardenedKeyStart {
			component -= hdkeychain.HardenedKeyStart
			hardened = true
		}
		result = fmt.Sprintf("%s/%d", result, component)
		if hardened {
			result += "'"
		}
	}
	return result
}

func checkDerivationPath(path DerivationPath) error {
	if len(path) != 5 {
		return ErrInvalidDerivationPathLength
	}
	// purpose, coin and account must be hardened, branch and index must not
	for _, elem := range path[:3] {
		if elem < hdkeychain.HardenedKeyStart {
			return ErrInvalidDerivationPathAccount
		}
	}
	for _, elem := range path[3:] {
		if elem >= hdkeychain.HardenedKeyStart {
			return ErrInvalidDerivationPath
		}
	}
	return Branch(path[3]).validate()
}

func containsEmptyString(composedPath []string) bool {
	for _, s := range composedPath {
		if s == "" {
			return true
		}
	}
	return false
}
