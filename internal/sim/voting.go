package sim

import "strconv"

// votingTemplate models the voting contract: one proposal, one cast
// vote with voting power, and the resulting tally.
var votingTemplate = Template{
	Name:  "voting",
	Short: "create a proposal and cast a weighted vote",
	Run:   runVoting,
}

func runVoting(p Params, tr *Trace) (map[string]string, error) {
	proposer, err := p.Address("proposer")
	if err != nil {
		return nil, err
	}

	voter, err := p.Address("voter")
	if err != nil {
		return nil, err
	}

	title, err := p.Text("title")
	if err != nil {
		return nil, err
	}

	choice := p.TextOr("choice", "for")
	if choice != "for" && choice != "against" {
		return nil, errInvalidChoice
	}

	power := int64(1)
	if p.TextOr("power", "") != "" {
		power, err = p.Amount("power")
		if err != nil {
			return nil, err
		}

		if power <= 0 {
			return nil, errAmountNotPositive
		}
	}

	tr.Stepf("voting: %s creates proposal %q", shortAddr(proposer), title)
	tr.Stepf("voting: %s votes %s with power %d", shortAddr(voter), choice, power)

	var votesFor, votesAgainst int64
	if choice == "for" {
		votesFor = power
	} else {
		votesAgainst = power
	}

	outcome := "rejected"
	if votesFor > votesAgainst {
		outcome = "passed"
	}

	tr.Stepf("voting: tally for=%d against=%d -> %s", votesFor, votesAgainst, outcome)

	return map[string]string{
		"proposal":      title,
		"proposer":      proposer,
		"votes_for":     strconv.FormatInt(votesFor, 10),
		"votes_against": strconv.FormatInt(votesAgainst, 10),
		"outcome":       outcome,
	}, nil
}
