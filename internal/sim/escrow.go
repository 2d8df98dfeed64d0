package sim

import "strconv"

// escrowTemplate models the escrow contract: a deposit held for a
// payee, released or refunded on a party's approval.
var escrowTemplate = Template{
	Name:  "escrow",
	Short: "deposit funds and release or refund them",
	Run:   runEscrow,
}

func runEscrow(p Params, tr *Trace) (map[string]string, error) {
	payer, err := p.Address("payer")
	if err != nil {
		return nil, err
	}

	payee, err := p.Address("payee")
	if err != nil {
		return nil, err
	}

	arbiter, err := p.Address("arbiter")
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

	tr.Stepf("escrow: %s deposits %d for %s (arbiter %s)",
		shortAddr(payer), amount, shortAddr(payee), shortAddr(arbiter))

	action := p.TextOr("action", "release")
	if action != "release" && action != "refund" {
		return nil, errInvalidAction
	}

	approver := p.TextOr("approver", payer)
	if approver != payer && approver != payee && approver != arbiter {
		return nil, errNotParty
	}

	tr.Stepf("escrow: %s approves %s", shortAddr(approver), action)

	recipient := payee
	status := "released"

	if action == "refund" {
		recipient = payer
		status = "refunded"
	}

	tr.Stepf("escrow: %d paid out to %s", amount, shortAddr(recipient))

	return map[string]string{
		"payer":     payer,
		"payee":     payee,
		"arbiter":   arbiter,
		"amount":    strconv.FormatInt(amount, 10),
		"status":    status,
		"recipient": recipient,
	}, nil
}
