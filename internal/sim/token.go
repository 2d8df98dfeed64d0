package sim

import "strconv"

// tokenTemplate models the token contract: admin-gated minting,
// transfers with balance checks, and total-supply tracking.
var tokenTemplate = Template{
	Name:  "token",
	Short: "mint and transfer a standard token",
	Run:   runToken,
}

func runToken(p Params, tr *Trace) (map[string]string, error) {
	admin, err := p.Address("admin")
	if err != nil {
		return nil, err
	}

	to, err := p.Address("to")
	if err != nil {
		return nil, err
	}

	amount, err := p.Amount("amount")
	if err != nil {
		return nil, err
	}

	tr.Stepf("token: initialize admin=%s", shortAddr(admin))

	if amount <= 0 {
		return nil, errAmountNotPositive
	}

	balances := map[string]int64{to: amount}
	supply := amount

	tr.Stepf("token: mint %d to %s (supply=%d)", amount, shortAddr(to), supply)

	// A transfer leg is optional; it moves tokens from the mint
	// recipient to transfer_to.
	if dest := p.TextOr("transfer_to", ""); dest != "" {
		destAddr, err := p.Address("transfer_to")
		if err != nil {
			return nil, err
		}

		transfer, err := p.Amount("transfer_amount")
		if err != nil {
			return nil, err
		}

		if transfer <= 0 {
			return nil, errAmountNotPositive
		}

		if balances[to] < transfer {
			return nil, errInsufficientBalance
		}

		balances[to] -= transfer
		balances[destAddr] += transfer

		tr.Stepf("token: transfer %d from %s to %s", transfer, shortAddr(to), shortAddr(destAddr))
	}

	state := map[string]string{
		"admin":        admin,
		"total_supply": strconv.FormatInt(supply, 10),
	}

	for addr, bal := range balances {
		state["balance."+addr] = strconv.FormatInt(bal, 10)
	}

	tr.Stepf("token: final supply=%d holders=%d", supply, len(balances))

	return state, nil
}

// shortAddr abbreviates a strkey address for transcript lines.
func shortAddr(a string) string {
	if len(a) <= 8 {
		return a
	}

	return a[:4] + ".." + a[len(a)-4:]
}
