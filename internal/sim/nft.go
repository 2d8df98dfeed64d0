package sim

import "strconv"

// nftTemplate models the NFT contract: an admin-gated mint of a
// collectible, an optional owner-only transfer, and royalty setup in
// basis points.
var nftTemplate = Template{
	Name:  "nft",
	Short: "mint a collectible and optionally transfer it",
	Run:   runNFT,
}

func runNFT(p Params, tr *Trace) (map[string]string, error) {
	admin, err := p.Address("admin")
	if err != nil {
		return nil, err
	}

	to, err := p.Address("to")
	if err != nil {
		return nil, err
	}

	uri, err := p.Text("uri")
	if err != nil {
		return nil, err
	}

	name := p.TextOr("name", "Collectible")
	symbol := p.TextOr("symbol", "NFT")

	tr.Stepf("nft: initialize %s (%s) admin=%s", name, symbol, shortAddr(admin))

	owner := to

	tr.Stepf("nft: mint #1 to %s uri=%s", shortAddr(to), uri)

	state := map[string]string{
		"admin":        admin,
		"name":         name,
		"symbol":       symbol,
		"total_supply": "1",
		"uri.1":        uri,
	}

	// A transfer leg is optional; only the current owner may send.
	if dest := p.TextOr("transfer_to", ""); dest != "" {
		destAddr, err := p.Address("transfer_to")
		if err != nil {
			return nil, err
		}

		from := p.TextOr("transfer_from", owner)
		if from != owner {
			return nil, errNotOwner
		}

		tr.Stepf("nft: transfer #1 from %s to %s", shortAddr(owner), shortAddr(destAddr))

		owner = destAddr
	}

	if p.TextOr("royalty_bps", "") != "" {
		receiver, err := p.Address("royalty_receiver")
		if err != nil {
			return nil, err
		}

		bps, err := p.Amount("royalty_bps")
		if err != nil {
			return nil, err
		}

		if bps < 0 || bps > 10_000 {
			return nil, errRoyaltyTooHigh
		}

		tr.Stepf("nft: set royalty %d bps to %s", bps, shortAddr(receiver))

		state["royalty_receiver"] = receiver
		state["royalty_bps"] = strconv.FormatInt(bps, 10)
	}

	state["owner.1"] = owner

	tr.Stepf("nft: #1 held by %s", shortAddr(owner))

	return state, nil
}
