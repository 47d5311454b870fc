package application

const (
	// BatchSize is the number of addresses derived and looked up per
	// discovery round.
	BatchSize = 10
	// GapLimit is the number of consecutive unused addresses after which a
	// branch is considered exhausted.
	GapLimit = 20

	// MinSendAmount is the smallest amount in satoshis accepted for the
	// target output of a send.
	MinSendAmount = 546

	// FeeWarningPercent marks a send as expensive when the fee exceeds this
	// percentage of the amount being sent.
	FeeWarningPercent = 10

	// TxHistoryPageSize bounds the transaction page fetched after address
	// discovery.
	TxHistoryPageSize = 50

	// scanLookupsPerSecond paces the discovery lookups against the chain
	// index, on top of the HTTP client's own limiter.
	scanLookupsPerSecond = 5
)
