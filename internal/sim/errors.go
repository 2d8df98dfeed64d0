package sim

import "errors"

// Request errors.
var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrMissingParam    = errors.New("missing required param")
	ErrInvalidParam    = errors.New("invalid param")
)

// Contract-rule errors, mirroring the on-chain template aborts.
var (
	errAmountNotPositive   = errors.New("amount must be positive")
	errInsufficientBalance = errors.New("insufficient balance")
	errNotParty            = errors.New("approver is not a party to the escrow")
	errInvalidChoice       = errors.New(`choice must be "for" or "against"`)
	errInvalidAction       = errors.New(`action must be "release" or "refund"`)
	errNotOwner            = errors.New("not the owner")
	errRoyaltyTooHigh      = errors.New("royalty cannot exceed 100%")
	errRewardRateNegative  = errors.New("reward rate cannot be negative")
	errInvalidUnstake      = errors.New("invalid unstake amount")
	errStakeLocked         = errors.New("assets are still locked")
	errDuplicateSigner     = errors.New("duplicate signer")
	errInvalidThreshold    = errors.New("threshold must be between 1 and the number of signers")
	errNotSigner           = errors.New("not a signer")
	errAlreadyApproved     = errors.New("signer already approved")
	errThresholdNotMet     = errors.New("approval threshold not met")
)

// Config errors.
var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigInvalid      = errors.New("invalid config file")
	errOutDirEmpty        = errors.New("out_dir cannot be empty")
	errMaxEntriesNegative = errors.New("cache.max_entries cannot be negative")
)
