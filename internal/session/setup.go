package session

import "quackey/internal/config"

// setup runs the first-run onboarding: accept the defaults or pick a
// directory, persist the config and bootstrap an empty accounts file.
func (c *Controller) setup() (Event, error) {
	c.ui.Title("Welcome to Quackey - Initial Setup")
	c.ui.Infof("Default configuration:")
	c.ui.Infof("  Accounts file: %s", c.cfg.StoragePath)
	c.ui.Infof("  Log file:      %s", c.cfg.LogPath)

	useDefaults, err := c.ui.Confirm("Use the default configuration?", true)
	if err != nil {
		return EventChooseExit, nil
	}
	if !useDefaults {
		dir, err := c.ui.Input("Directory for the accounts and log files", ".")
		if err != nil {
			return EventChooseExit, nil
		}
		c.cfg = config.Default(dir)
	}

	if err := c.cfg.Save(c.env.ConfigPath); err != nil {
		c.ui.Errorf("Could not save configuration: %v", err)
		return EventChooseExit, nil
	}
	if err := c.cfg.Bootstrap(); err != nil {
		c.ui.Errorf("Could not prepare storage: %v", err)
		return EventChooseExit, nil
	}

	c.configured = true
	c.openStore()
	c.ui.Successf("Configuration saved. Quackey is ready to use.")
	c.log.Info().Str("storage", c.cfg.StoragePath).Msg("initial setup completed")
	return EventSetupDone, nil
}
