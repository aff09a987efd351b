package models

import "testing"

func validConfig() DebateConfig {
	return DebateConfig{
		Topic:          "Universal basic income",
		Category:       "Economics",
		Mode:           ModeCasual,
		ResponseLength: LengthMedium,
		UserSide:       SideSupport,
		AISide:         SideOppose,
	}
}

func TestDebateConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*DebateConfig)
		wantErr bool
	}{
		{"valid", func(c *DebateConfig) {}, false},
		{"empty topic", func(c *DebateConfig) { c.Topic = "" }, true},
		{"whitespace topic", func(c *DebateConfig) { c.Topic = "   " }, true},
		{"unknown mode", func(c *DebateConfig) { c.Mode = "Speedrun" }, true},
		{"unknown length", func(c *DebateConfig) { c.ResponseLength = "Epic" }, true},
		{"unknown user side", func(c *DebateConfig) { c.UserSide = "Neutral" }, true},
		{"same sides", func(c *DebateConfig) { c.AISide = SideSupport }, true},
		{"sides swapped", func(c *DebateConfig) {
			c.UserSide = SideOppose
			c.AISide = SideSupport
		}, false},
		{"exam mode", func(c *DebateConfig) { c.Mode = ModeExamPreparation }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSideOpposite(t *testing.T) {
	if SideSupport.Opposite() != SideOppose {
		t.Error("Support.Opposite() should be Oppose")
	}
	if SideOppose.Opposite() != SideSupport {
		t.Error("Oppose.Opposite() should be Support")
	}
}

func TestDebateConfigRoundTrip(t *testing.T) {
	cfg := validConfig()
	d := Debate{
		Topic:          cfg.Topic,
		Category:       cfg.Category,
		Mode:           cfg.Mode,
		ResponseLength: cfg.ResponseLength,
		UserSide:       cfg.UserSide,
		AISide:         cfg.AISide,
	}
	if d.Config() != cfg {
		t.Errorf("Config() = %+v, want %+v", d.Config(), cfg)
	}
}
