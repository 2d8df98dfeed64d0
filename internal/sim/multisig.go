package sim

import "strconv"

// multisigTemplate models the multisig wallet contract: an N-of-M
// signer set approving one transfer proposal, executed only when the
// threshold is met.
var multisigTemplate = Template{
	Name:  "multisig",
	Short: "collect N-of-M approvals and execute a transfer",
	Run:   runMultisig,
}

func runMultisig(p Params, tr *Trace) (map[string]string, error) {
	signers, err := p.AddressList("signers")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(signers))
	for _, s := range signers {
		if seen[s] {
			return nil, errDuplicateSigner
		}

		seen[s] = true
	}

	threshold, err := p.Amount("threshold")
	if err != nil {
		return nil, err
	}

	if threshold < 1 || threshold > int64(len(signers)) {
		return nil, errInvalidThreshold
	}

	proposer, err := p.Address("proposer")
	if err != nil {
		return nil, err
	}

	if !seen[proposer] {
		return nil, errNotSigner
	}

	recipient, err := p.Address("recipient")
	if err != nil {
		return nil, err
	}

	amount, err := p.Amount("amount")
	if err != nil {
		return nil, err
	}

	if amount <= 0 {
		return nil, errAmountNotPositive
	}

	tr.Stepf("multisig: wallet with %d signers, threshold %d", len(signers), threshold)
	tr.Stepf("multisig: %s proposes transfer of %d to %s",
		shortAddr(proposer), amount, shortAddr(recipient))

	// Approvals default to the proposer alone.
	approvers := []string{proposer}
	if p.TextOr("approvers", "") != "" {
		approvers, err = p.AddressList("approvers")
		if err != nil {
			return nil, err
		}
	}

	approved := make(map[string]bool, len(approvers))
	for _, a := range approvers {
		if !seen[a] {
			return nil, errNotSigner
		}

		if approved[a] {
			return nil, errAlreadyApproved
		}

		approved[a] = true

		tr.Stepf("multisig: %s approves proposal #1", shortAddr(a))
	}

	if int64(len(approvers)) < threshold {
		return nil, errThresholdNotMet
	}

	tr.Stepf("multisig: execute transfer %d to %s (%d/%d approvals)",
		amount, shortAddr(recipient), len(approvers), threshold)

	return map[string]string{
		"signers":   strconv.Itoa(len(signers)),
		"threshold": strconv.FormatInt(threshold, 10),
		"proposal":  "1",
		"approvals": strconv.Itoa(len(approvers)),
		"status":    "executed",
		"recipient": recipient,
		"amount":    strconv.FormatInt(amount, 10),
	}, nil
}
