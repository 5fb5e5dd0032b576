package session

import (
	"context"
	"time"

	"quackey/internal/otp"
)

// generating shows a live code for one account, refreshing the display
// on a fixed tick until the user presses Enter. The generated code is
// never logged; only the account name and timestamp are.
func (c *Controller) generating(ctx context.Context) (Event, error) {
	c.ui.Title("Generate Code")
	if c.store == nil {
		c.ui.Errorf("Accounts unavailable: %v", c.loadErr)
		return EventBack, nil
	}

	acc, ok := c.selectAccount()
	if !ok {
		return EventBack, nil
	}

	key, err := acc.Key()
	if err != nil {
		c.ui.Errorf("The stored secret for %s is unusable: %v", acc.Name, err)
		c.ui.Infof("Delete the account and add it again with a valid key.")
		c.log.Error().Str("account", acc.Name).Msg("generation failed: unusable secret")
		return EventBack, nil
	}

	// The stdin wait cannot be interrupted, so it runs detached and
	// signals the render loop instead of joining it.
	stop := make(chan struct{})
	go func() {
		_ = c.ui.WaitEnter()
		close(stop)
	}()

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()
	for done := false; !done; {
		code, remaining, err := otp.Generate(key, acc.Digits, acc.Period, acc.Algorithm, c.now())
		if err != nil {
			c.ui.EndCountdown()
			return EventBack, err
		}
		c.ui.Countdown(code, remaining)
		select {
		case <-stop:
			done = true
		case <-ctx.Done():
			c.ui.EndCountdown()
			return EventBack, ctx.Err()
		case <-ticker.C:
		}
	}
	c.ui.EndCountdown()

	c.log.Info().Str("account", acc.Name).Int64("at", c.now().Unix()).Msg("code generated")
	return EventBack, nil
}
