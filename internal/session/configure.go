package session

import (
	"os"

	"quackey/internal/accounts"
)

// configuring shows the current paths and lets the user move them.
// Re-pointing at an existing accounts file loads it as-is after an
// explicit confirmation; the two files are never merged or overwritten.
func (c *Controller) configuring() (Event, error) {
	c.ui.Title("Settings")
	c.ui.Infof("Accounts file: %s", c.cfg.StoragePath)
	c.ui.Infof("Log file:      %s", c.cfg.LogPath)

	storagePath, err := c.ui.Input("Accounts file path", c.cfg.StoragePath)
	if err != nil {
		return EventChooseExit, nil
	}
	logPath, err := c.ui.Input("Log file path", c.cfg.LogPath)
	if err != nil {
		return EventChooseExit, nil
	}

	if storagePath != c.cfg.StoragePath {
		if !c.switchStorage(storagePath) {
			return EventBack, nil
		}
	}

	if storagePath == c.cfg.StoragePath && logPath == c.cfg.LogPath {
		c.ui.Infof("Settings unchanged.")
		return EventBack, nil
	}

	c.cfg.StoragePath = storagePath
	if logPath != c.cfg.LogPath {
		c.cfg.LogPath = logPath
		c.ui.Infof("The log path change takes effect on the next start.")
	}

	if err := c.cfg.Save(c.env.ConfigPath); err != nil {
		c.ui.Errorf("Could not save configuration: %v", err)
		return EventBack, nil
	}
	if err := c.cfg.Bootstrap(); err != nil {
		c.ui.Errorf("Could not prepare storage: %v", err)
		return EventBack, nil
	}

	c.ui.Successf("Settings saved.")
	c.log.Info().Str("storage", c.cfg.StoragePath).Msg("settings updated")
	return EventBack, nil
}

// switchStorage moves the session to a new accounts file. An existing
// file at the target is adopted wholesale; when the target is absent
// the user may carry the current accounts over, otherwise the session
// starts from an empty file there.
func (c *Controller) switchStorage(path string) bool {
	if _, err := os.Stat(path); err == nil {
		adopt, err := c.ui.Confirm("A file already exists at '"+path+"'. Load its accounts instead of the current ones?", false)
		if err != nil || !adopt {
			c.ui.Infof("Storage path unchanged.")
			return false
		}
		st, err := accounts.Open(path, c.log)
		if err != nil {
			c.ui.Errorf("Could not load '%s': %v", path, err)
			c.ui.Infof("Storage path unchanged.")
			return false
		}
		c.store, c.loadErr = st, nil
		c.ui.Successf("Loaded %d account(s) from %s.", st.Len(), path)
		return true
	}

	if c.store != nil {
		carry, err := c.ui.Confirm("Copy the current accounts to the new file?", true)
		if err != nil {
			return false
		}
		if carry {
			if err := c.store.SaveAs(path); err != nil {
				c.ui.Errorf("Could not write '%s': %v", path, err)
				return false
			}
			return true
		}
	}

	st, err := accounts.Open(path, c.log)
	if err != nil {
		c.ui.Errorf("Could not open '%s': %v", path, err)
		return false
	}
	c.store, c.loadErr = st, nil
	return true
}
