package application

import "errors"

var (
	// ErrNotLoggedIn ...
	ErrNotLoggedIn = errors.New("no wallet is loaded, login first")
	// ErrAlreadyLoggedIn ...
	ErrAlreadyLoggedIn = errors.New("a wallet is already loaded, logout first")
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is not valid")
	// ErrScanInProgress ...
	ErrScanInProgress = errors.New("a scan is already in progress")
	// ErrStaleScan is returned when a scan outcome is discarded because the
	// session changed while it was running.
	ErrStaleScan = errors.New("scan outcome discarded, session changed")
	// ErrInvalidTargetAddress ...
	ErrInvalidTargetAddress = errors.New("target address is not valid for the network")
	// ErrAmountBelowMinimum ...
	ErrAmountBelowMinimum = errors.New("amount is below the minimum send amount")
	// ErrNullFeeRate ...
	ErrNullFeeRate = errors.New("fee rate must not be null")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("spendable funds do not cover amount and fees")
	// ErrBlockchainNotSupported ...
	ErrBlockchainNotSupported = errors.New("blockchain is not supported")
)
