package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"quackey/internal/accounts"
	"quackey/internal/config"
)

// Prompter is the terminal surface the controller drives. It carries no
// state of its own, so tests can script it.
type Prompter interface {
	Title(s string)
	Infof(format string, args ...any)
	Successf(format string, args ...any)
	Errorf(format string, args ...any)
	Select(prompt string, options []string) (int, error)
	Input(prompt, def string) (string, error)
	InputSecret(prompt string) (string, error)
	Confirm(prompt string, def bool) (bool, error)
	Table(header []string, rows [][]string)
	ShowQR(uri string)
	Countdown(code string, remaining int)
	EndCountdown()
	WaitEnter() error
}

// Options wires a Controller. Now and Tick exist so tests can pin the
// clock and the refresh cadence.
type Options struct {
	Env        config.Env
	Config     config.Config
	Configured bool
	UI         Prompter
	Log        zerolog.Logger
	Now        func() time.Time
	Tick       time.Duration
}

// Controller owns the session loop: it orchestrates the stores and the
// OTP engine, and holds no algorithmic logic itself.
type Controller struct {
	env        config.Env
	cfg        config.Config
	configured bool
	store      *accounts.Store // nil while the accounts file is unreadable
	loadErr    error           // why store is nil
	ui         Prompter
	log        zerolog.Logger
	now        func() time.Time
	tick       time.Duration
}

func New(opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Tick == 0 {
		opts.Tick = time.Second
	}
	return &Controller{
		env:        opts.Env,
		cfg:        opts.Config,
		configured: opts.Configured,
		ui:         opts.UI,
		log:        opts.Log,
		now:        opts.Now,
		tick:       opts.Tick,
	}
}

// Run drives the state machine until the user exits or ctx is
// cancelled. A corrupt accounts file disables the account flows but
// keeps the settings flow reachable so the user can re-point storage.
func (c *Controller) Run(ctx context.Context) error {
	state := StateMainMenu
	if !c.configured {
		state = StateSetup
	} else {
		c.openStore()
	}

	for state != StateExiting {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			ev  Event
			err error
		)
		switch state {
		case StateSetup:
			ev, err = c.setup()
		case StateMainMenu:
			ev, err = c.mainMenu()
		case StateGenerating:
			ev, err = c.generating(ctx)
		case StateManaging:
			ev, err = c.managing()
		case StateConfiguring:
			ev, err = c.configuring()
		}
		if err != nil {
			return err
		}
		state = Next(state, ev)
	}

	c.log.Info().Msg("session ended")
	return nil
}

func (c *Controller) openStore() {
	st, err := accounts.Open(c.cfg.StoragePath, c.log)
	if err != nil {
		c.store, c.loadErr = nil, err
		c.log.Error().Err(err).Str("path", c.cfg.StoragePath).Msg("failed to load accounts")
		return
	}
	c.store, c.loadErr = st, nil
}

func (c *Controller) mainMenu() (Event, error) {
	c.ui.Title("Quackey")
	if c.store == nil && c.loadErr != nil {
		c.ui.Errorf("Accounts unavailable: %v", c.loadErr)
		c.ui.Infof("You can still open Settings and point at a readable accounts file.")
	}

	i, err := c.ui.Select("Select an option", []string{
		"Generate code",
		"Manage accounts",
		"Settings",
		"Exit",
	})
	if err != nil {
		return EventChooseExit, nil
	}
	switch i {
	case 0:
		return EventChooseGenerate, nil
	case 1:
		return EventChooseManage, nil
	case 2:
		return EventChooseConfigure, nil
	default:
		return EventChooseExit, nil
	}
}

// selectAccount picks an account for a flow; with a single account the
// choice is implicit.
func (c *Controller) selectAccount() (accounts.Account, bool) {
	list := c.store.List()
	if len(list) == 0 {
		c.ui.Infof("No accounts saved yet.")
		return accounts.Account{}, false
	}
	if len(list) == 1 {
		c.ui.Infof("Using the only saved account: %s", list[0].Label())
		return list[0], true
	}

	labels := make([]string, len(list))
	for i, a := range list {
		labels[i] = a.Label()
	}
	i, err := c.ui.Select("Select an account", labels)
	if err != nil {
		return accounts.Account{}, false
	}
	return list[i], true
}
