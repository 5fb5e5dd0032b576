package session

import "testing"

func TestNext(t *testing.T) {
	cases := []struct {
		name string
		from State
		ev   Event
		want State
	}{
		{"SetupDone", StateSetup, EventSetupDone, StateMainMenu},
		{"MenuToGenerate", StateMainMenu, EventChooseGenerate, StateGenerating},
		{"MenuToManage", StateMainMenu, EventChooseManage, StateManaging},
		{"MenuToConfigure", StateMainMenu, EventChooseConfigure, StateConfiguring},
		{"GenerateBack", StateGenerating, EventBack, StateMainMenu},
		{"ManageBack", StateManaging, EventBack, StateMainMenu},
		{"ConfigureBack", StateConfiguring, EventBack, StateMainMenu},
		{"ExitFromMenu", StateMainMenu, EventChooseExit, StateExiting},
		{"ExitFromSetup", StateSetup, EventChooseExit, StateExiting},
		{"ExitFromGenerating", StateGenerating, EventChooseExit, StateExiting},
		{"StrayEventFallsBackToMenu", StateSetup, EventBack, StateMainMenu},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Next(tc.from, tc.ev); got != tc.want {
				t.Errorf("Next(%s, %d) = %s, want %s", tc.from, tc.ev, got, tc.want)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if StateMainMenu.String() != "main_menu" {
		t.Errorf("unexpected name %q", StateMainMenu.String())
	}
	if State(99).String() != "unknown" {
		t.Errorf("unexpected name for out-of-range state: %q", State(99).String())
	}
}
