package session

import (
	"errors"
	"strconv"

	"quackey/internal/accounts"
	"quackey/internal/otp"
)

// managing loops over the account management submenu until the user
// goes back to the main menu.
func (c *Controller) managing() (Event, error) {
	for {
		c.ui.Title("Account Management")
		i, err := c.ui.Select("Select an option", []string{
			"View accounts",
			"Add account",
			"Edit account",
			"Delete account",
			"Export account (QR)",
			"Back",
		})
		if err != nil {
			return EventChooseExit, nil
		}
		if i == 5 {
			return EventBack, nil
		}
		if c.store == nil {
			c.ui.Errorf("Accounts unavailable: %v", c.loadErr)
			continue
		}

		switch i {
		case 0:
			c.viewAccounts()
		case 1:
			c.addAccount()
		case 2:
			c.editAccount()
		case 3:
			c.deleteAccount()
		case 4:
			c.exportAccount()
		}
	}
}

func (c *Controller) viewAccounts() {
	list := c.store.List()
	if len(list) == 0 {
		c.ui.Infof("No accounts saved yet.")
		return
	}

	rows := make([][]string, len(list))
	for i, a := range list {
		rows[i] = []string{
			a.Name,
			a.Issuer,
			strconv.Itoa(a.Digits),
			strconv.Itoa(a.Period) + "s",
			string(a.Algorithm),
		}
	}
	c.ui.Table([]string{"NAME", "ISSUER", "DIGITS", "PERIOD", "ALGORITHM"}, rows)
	c.log.Info().Int("count", len(list)).Msg("accounts viewed")
}

func (c *Controller) addAccount() {
	name, err := c.ui.Input("Account name (e.g. 'me@example.com')", "")
	if err != nil || name == "" {
		c.ui.Errorf("Account name must not be empty.")
		return
	}
	issuer, err := c.ui.Input("Issuer (optional, e.g. 'GitHub')", "")
	if err != nil {
		return
	}

	var secret string
	choice, err := c.ui.Select("Shared secret", []string{
		"Enter an existing secret",
		"Generate a new secret",
	})
	if err != nil {
		return
	}
	if choice == 0 {
		raw, err := c.ui.InputSecret("Secret key (base32)")
		if err != nil {
			return
		}
		secret, err = otp.NormalizeSecret(raw)
		if err != nil {
			c.ui.Errorf("Invalid secret: %v", err)
			return
		}
	} else {
		secret, err = otp.GenerateSecret()
		if err != nil {
			c.ui.Errorf("Could not generate a secret: %v", err)
			return
		}
		c.ui.Infof("Generated secret (enroll it with the service now): %s", secret)
	}

	digits, period, alg, ok := c.promptParams(6, 30, otp.AlgorithmSHA1)
	if !ok {
		return
	}

	acc := accounts.Account{
		Name:      name,
		Issuer:    issuer,
		Secret:    secret,
		Digits:    digits,
		Period:    period,
		Algorithm: alg,
	}
	if err := c.store.Add(acc); err != nil {
		c.reportStoreError("add", err)
		return
	}
	c.ui.Successf("Account %q added.", name)
}

func (c *Controller) editAccount() {
	acc, ok := c.selectAccount()
	if !ok {
		return
	}

	c.ui.Infof("Current: %s, digits %d, period %ds, %s", acc.Label(), acc.Digits, acc.Period, acc.Algorithm)
	c.ui.Infof("Press Enter to keep a current value.")

	name, err := c.ui.Input("Account name", acc.Name)
	if err != nil {
		return
	}
	issuer, err := c.ui.Input("Issuer (optional)", acc.Issuer)
	if err != nil {
		return
	}

	patch := accounts.Patch{Name: &name, Issuer: &issuer}

	replace, err := c.ui.Confirm("Replace the stored secret?", false)
	if err != nil {
		return
	}
	if replace {
		raw, err := c.ui.InputSecret("New secret key (base32)")
		if err != nil {
			return
		}
		secret, err := otp.NormalizeSecret(raw)
		if err != nil {
			c.ui.Errorf("Invalid secret: %v", err)
			return
		}
		patch.Secret = &secret
	}

	digits, period, alg, ok := c.promptParams(acc.Digits, acc.Period, acc.Algorithm)
	if !ok {
		return
	}
	patch.Digits = &digits
	patch.Period = &period
	patch.Algorithm = &alg

	if err := c.store.Edit(acc.Name, patch); err != nil {
		c.reportStoreError("edit", err)
		return
	}
	c.ui.Successf("Account updated.")
}

func (c *Controller) deleteAccount() {
	acc, ok := c.selectAccount()
	if !ok {
		return
	}
	confirmed, err := c.ui.Confirm("Delete account '"+acc.Name+"'?", false)
	if err != nil || !confirmed {
		c.ui.Infof("Deletion cancelled.")
		return
	}
	if err := c.store.Delete(acc.Name); err != nil {
		if errors.Is(err, accounts.ErrPersistence) {
			c.ui.Errorf("The account was removed from this session, but the accounts file could not be updated: %v", err)
			c.ui.Infof("The on-disk state may still contain the deleted account.")
			return
		}
		c.reportStoreError("delete", err)
		return
	}
	c.ui.Successf("Account deleted.")
}

func (c *Controller) exportAccount() {
	acc, ok := c.selectAccount()
	if !ok {
		return
	}
	uri := otp.KeyURI(acc.Issuer, acc.Name, acc.Secret, acc.Digits, acc.Period, acc.Algorithm)
	c.ui.Infof("Scan this with an authenticator app:")
	c.ui.ShowQR(uri)
	c.ui.Infof("%s", uri)
	// The URI embeds the secret, so only the account name is logged.
	c.log.Info().Str("account", acc.Name).Msg("account exported")
}

// promptParams asks for the three TOTP parameters, defaulting the menu
// hints to the current values.
func (c *Controller) promptParams(curDigits, curPeriod int, curAlg otp.Algorithm) (digits, period int, alg otp.Algorithm, ok bool) {
	i, err := c.ui.Select("Digits (currently "+strconv.Itoa(curDigits)+")", []string{"6 digits", "7 digits", "8 digits"})
	if err != nil {
		return 0, 0, "", false
	}
	digits = otp.AllowedDigits[i]

	i, err = c.ui.Select("Refresh period (currently "+strconv.Itoa(curPeriod)+"s)", []string{"30 seconds", "60 seconds", "90 seconds"})
	if err != nil {
		return 0, 0, "", false
	}
	period = otp.AllowedPeriods[i]

	i, err = c.ui.Select("Algorithm (currently "+string(curAlg)+")", []string{"SHA1", "SHA256", "SHA512"})
	if err != nil {
		return 0, 0, "", false
	}
	alg = otp.Algorithms[i]

	return digits, period, alg, true
}

func (c *Controller) reportStoreError(op string, err error) {
	switch {
	case errors.Is(err, accounts.ErrDuplicateName):
		c.ui.Errorf("An account with that name already exists.")
	case errors.Is(err, accounts.ErrNotFound):
		c.ui.Errorf("No such account.")
	case errors.Is(err, accounts.ErrValidation):
		c.ui.Errorf("Invalid account: %v", err)
	default:
		c.ui.Errorf("Could not %s the account: %v", op, err)
	}
	c.log.Error().Err(err).Str("op", op).Msg("account operation failed")
}
