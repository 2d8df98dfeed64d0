package sim

import "strconv"

// stakingTemplate models the staking contract: a lockup deposit with
// linear reward accrual, and an optional unstake once the lock has
// elapsed.
var stakingTemplate = Template{
	Name:  "staking",
	Short: "stake with a lockup and accrue linear rewards",
	Run:   runStaking,
}

func runStaking(p Params, tr *Trace) (map[string]string, error) {
	staker, err := p.Address("staker")
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

	rewardRate := int64(1)
	if p.TextOr("reward_rate", "") != "" {
		rewardRate, err = p.Amount("reward_rate")
		if err != nil {
			return nil, err
		}

		if rewardRate < 0 {
			return nil, errRewardRateNegative
		}
	}

	lock := int64(0)
	if p.TextOr("lock_duration", "") != "" {
		lock, err = p.Amount("lock_duration")
		if err != nil {
			return nil, err
		}
	}

	// elapsed is the simulated seconds between stake and the final
	// action; it defaults to exactly the lock duration.
	elapsed := lock
	if p.TextOr("elapsed", "") != "" {
		elapsed, err = p.Amount("elapsed")
		if err != nil {
			return nil, err
		}
	}

	tr.Stepf("staking: %s stakes %d locked for %ds", shortAddr(staker), amount, lock)

	// Linear accrual: rewards = amount * rate * time.
	rewards := amount * rewardRate * elapsed

	tr.Stepf("staking: accrue %d reward units over %ds", rewards, elapsed)

	staked := amount

	if p.TextOr("unstake_amount", "") != "" {
		unstake, err := p.Amount("unstake_amount")
		if err != nil {
			return nil, err
		}

		if unstake <= 0 || unstake > staked {
			return nil, errInvalidUnstake
		}

		if elapsed < lock {
			return nil, errStakeLocked
		}

		staked -= unstake

		tr.Stepf("staking: %s unstakes %d (%d remaining)", shortAddr(staker), unstake, staked)
	}

	tr.Stepf("staking: final staked=%d rewards=%d", staked, rewards)

	return map[string]string{
		"staker":        staker,
		"staked":        strconv.FormatInt(staked, 10),
		"total_staked":  strconv.FormatInt(staked, 10),
		"rewards":       strconv.FormatInt(rewards, 10),
		"lock_duration": strconv.FormatInt(lock, 10),
	}, nil
}
